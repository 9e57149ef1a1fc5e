package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/inline/internal/app"
)

var version = "dev"

var (
	configPath string
	prefsPath  string
	pollEvery  time.Duration
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "inline: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inline",
		Short:         "Join a waitlist or run one from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "override config path (optional)")
	root.PersistentFlags().StringVar(&prefsPath, "prefs", "", "override preferences path (optional)")

	root.AddCommand(
		newCustomerCmd(),
		newDashboardCmd(),
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newQRCmd(),
		newLogsCmd(),
		newAssetsCmd(),
		newVersionCmd(),
	)
	return root
}

// withEnv runs fn with a fully wired Env and closes it afterwards.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, env *app.Env) error) error {
	env, err := app.Setup(app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		PollEvery:  pollEvery,
		Version:    version,
	})
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()
	return fn(cmd.Context(), env)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the inline version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
