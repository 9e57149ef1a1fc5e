package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/inline/internal/app"
)

func newCustomerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "customer [vendorID]",
		Short: "Join and follow a vendor's waitlist",
		Long: "Open the customer view for a vendor's waitlist. Without a vendor ID the\n" +
			"last vendor you joined is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var vendorID int64
			if len(args) == 1 {
				id, err := parseID(args[0], "vendor")
				if err != nil {
					return err
				}
				vendorID = id
			}
			return withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				return app.RunCustomer(ctx, env, vendorID)
			})
		},
	}
}

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Manage your waitlist and assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, app.RunDashboard)
		},
	}
	cmd.Flags().DurationVar(&pollEvery, "poll", 0, "dashboard refresh interval (optional, defaults to 15s)")
	return cmd
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", what, raw)
	}
	return id, nil
}
