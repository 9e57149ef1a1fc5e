package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/app"
	"github.com/five82/inline/internal/assets"
	"github.com/five82/inline/internal/present"
)

func newAssetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List and edit your tables, rooms and other capacity",
	}
	cmd.AddCommand(newAssetsListCmd(), newAssetsShowCmd(), newAssetsAddCmd(), newAssetsEditCmd(), newAssetsDeleteCmd())
	return cmd
}

// withAssets runs fn with an asset service bound to the logged-in vendor.
func withAssets(cmd *cobra.Command, fn func(ctx context.Context, svc *assets.Service) error) error {
	return withEnv(cmd, func(ctx context.Context, env *app.Env) error {
		sess, err := env.RequireSession()
		if err != nil {
			return err
		}
		return fn(ctx, assets.NewService(env.Client, sess.Vendor.ID))
	})
}

func newAssetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List assets grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssets(cmd, func(ctx context.Context, svc *assets.Service) error {
				all, err := svc.List(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(all) == 0 {
					fmt.Fprintln(w, "No assets yet. Add one with `inline assets add`.")
					return nil
				}
				fmt.Fprintln(w, assetTable(all))

				summary := assets.Summarize(all)
				if remote, err := svc.CapacitySummary(ctx); err == nil && remote != nil {
					summary = *remote
				}
				writeCapacity(w, summary)
				return nil
			})
		},
	}
}

func assetTable(all []api.Asset) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "CATEGORY", "NAME", "TYPE", "CAPACITY", "STATUS")
	for _, group := range assets.GroupByCategory(all) {
		for _, a := range group.Assets {
			t.Row(
				strconv.FormatInt(a.ID, 10),
				group.Category,
				present.AssetName(a),
				a.Type,
				strconv.Itoa(a.Capacity),
				string(a.Status),
			)
		}
	}
	return t.Render()
}

func writeCapacity(w io.Writer, s api.CapacitySummary) {
	fmt.Fprintf(w, "Capacity: %d total, %d available, %d occupied, %d maintenance\n",
		s.TotalCapacity, s.AvailableCapacity, s.OccupiedCapacity, s.MaintenanceCapacity)
}

func newAssetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <assetID>",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "asset")
			if err != nil {
				return err
			}
			return withAssets(cmd, func(ctx context.Context, svc *assets.Service) error {
				a, err := svc.Get(ctx, id)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "%s (#%d)\n", present.AssetName(*a), a.ID)
				fmt.Fprintf(w, "  Category:    %s\n", a.Category)
				if a.Type != "" {
					fmt.Fprintf(w, "  Type:        %s\n", a.Type)
				}
				fmt.Fprintf(w, "  Capacity:    %d\n", a.Capacity)
				fmt.Fprintf(w, "  Status:      %s\n", a.Status)
				if d := strings.TrimSpace(a.Description); d != "" {
					fmt.Fprintf(w, "  Description: %s\n", d)
				}
				return nil
			})
		},
	}
}

func newAssetsAddCmd() *cobra.Command {
	var (
		req    api.AssetCreateRequest
		status string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Status = api.AssetStatus(strings.ToLower(strings.TrimSpace(status)))
			return withAssets(cmd, func(ctx context.Context, svc *assets.Service) error {
				a, err := svc.Create(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (#%d)\n", present.AssetName(*a), a.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "display name, e.g. Table 4")
	cmd.Flags().IntVar(&req.Capacity, "capacity", 1, "number of people it holds")
	cmd.Flags().StringVar(&req.Category, "category", "", "grouping, e.g. Patio")
	cmd.Flags().StringVar(&req.Type, "type", "", "kind of asset, e.g. table")
	cmd.Flags().StringVar(&req.Description, "description", "", "free text")
	cmd.Flags().StringVar(&status, "status", string(api.AssetAvailable), "available, occupied, maintenance or reserved")
	return cmd
}

func newAssetsEditCmd() *cobra.Command {
	var (
		name, kind, category, description, status string
		capacity                                  int
	)
	cmd := &cobra.Command{
		Use:   "edit <assetID>",
		Short: "Change an asset's fields",
		Long:  "Update only the fields passed as flags; everything else is left as is.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "asset")
			if err != nil {
				return err
			}
			var req api.AssetUpdateRequest
			flags := cmd.Flags()
			if flags.Changed("name") {
				v := strings.TrimSpace(name)
				req.Name = &v
			}
			if flags.Changed("capacity") {
				req.Capacity = &capacity
			}
			if flags.Changed("type") {
				v := strings.TrimSpace(kind)
				req.Type = &v
			}
			if flags.Changed("category") {
				v := strings.TrimSpace(category)
				req.Category = &v
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("status") {
				v := api.AssetStatus(strings.ToLower(strings.TrimSpace(status)))
				req.Status = &v
			}
			if req == (api.AssetUpdateRequest{}) {
				return errors.New("nothing to change; pass at least one of --name, --capacity, --type, --category, --description or --status")
			}
			return withAssets(cmd, func(ctx context.Context, svc *assets.Service) error {
				if _, err := svc.Get(ctx, id); err != nil {
					return err
				}
				a, err := svc.Update(ctx, id, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (#%d)\n", present.AssetName(*a), a.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "number of people it holds")
	cmd.Flags().StringVar(&kind, "type", "", "kind of asset")
	cmd.Flags().StringVar(&category, "category", "", "grouping")
	cmd.Flags().StringVar(&description, "description", "", "free text")
	cmd.Flags().StringVar(&status, "status", "", "available, occupied, maintenance or reserved")
	return cmd
}

func newAssetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <assetID>",
		Aliases: []string{"rm"},
		Short:   "Delete an asset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "asset")
			if err != nil {
				return err
			}
			return withAssets(cmd, func(ctx context.Context, svc *assets.Service) error {
				if _, err := svc.Get(ctx, id); err != nil {
					return err
				}
				if err := svc.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted asset #%d\n", id)
				return nil
			})
		},
	}
}
