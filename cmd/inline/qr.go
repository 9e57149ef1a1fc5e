package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/inline/internal/app"
	"github.com/five82/inline/internal/qr"
)

func newQRCmd() *cobra.Command {
	var (
		out      string
		htmlPath string
	)
	cmd := &cobra.Command{
		Use:   "qr [vendorID]",
		Short: "Export the waitlist join link as a QR code",
		Long: "Print the join link and its QR code. Without a vendor ID the logged-in\n" +
			"vendor is used. --out writes a PNG, --html a printable page.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				vendorID, err := qrVendor(env, args)
				if err != nil {
					return err
				}
				link := env.Config.JoinURL(vendorID)

				w := cmd.OutOrStdout()
				if out == "" && htmlPath == "" {
					code, err := qr.Terminal(link)
					if err != nil {
						return err
					}
					fmt.Fprint(w, code)
				}
				if out != "" {
					png, err := qr.PNG(link)
					if err != nil {
						return err
					}
					if err := os.WriteFile(out, png, 0o644); err != nil {
						return fmt.Errorf("write qr png: %w", err)
					}
					fmt.Fprintf(w, "Wrote %s\n", out)
				}
				if htmlPath != "" {
					vendor := env.LookupVendor(ctx, vendorID)
					page, err := qr.HTML(qr.Page{BusinessName: vendor.BusinessName, Link: link})
					if err != nil {
						return err
					}
					if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
						return fmt.Errorf("write qr page: %w", err)
					}
					fmt.Fprintf(w, "Wrote %s\n", htmlPath)
				}
				fmt.Fprintln(w, link)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the QR code as a PNG file")
	cmd.Flags().StringVar(&htmlPath, "html", "", "write a printable HTML page")
	return cmd
}

func qrVendor(env *app.Env, args []string) (int64, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return parseID(args[0], "vendor")
	}
	sess, err := env.RequireSession()
	if err != nil {
		return 0, err
	}
	return sess.Vendor.ID, nil
}
