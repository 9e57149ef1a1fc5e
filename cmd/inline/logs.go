package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/five82/inline/internal/app"
	"github.com/five82/inline/internal/logging"
	"github.com/five82/inline/internal/logtail"
)

func newLogsCmd() *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the inline log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				tail, err := logtail.Read(env.Config.LogPath, lines)
				if err != nil {
					return err
				}
				if level != "" {
					tail = logtail.Filter(tail, logging.ParseLevel(level))
				}
				if len(tail) == 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "No log entries in %s\n", env.Config.LogPath)
					return nil
				}
				colors := logtail.NewColorizer(lipgloss.NewRenderer(os.Stdout))
				w := cmd.OutOrStdout()
				for _, line := range colors.Lines(tail) {
					fmt.Fprintln(w, line)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "", "minimum level: trace, debug, info, warn, error")
	return cmd
}
