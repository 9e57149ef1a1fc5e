package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/five82/inline/internal/api"
	"github.com/five82/inline/internal/app"
	"github.com/five82/inline/internal/session"
)

func newLoginCmd() *cobra.Command {
	var req api.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				pw, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				req.Password = pw
			}
			return withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				sess, err := session.Login(ctx, env.Client, env.Session, req)
				if err != nil {
					return authError(err, "Login failed")
				}
				env.Log.Info().Int64("vendor", sess.Vendor.ID).Msg("logged in")
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (vendor %d)\n", vendorName(sess.Vendor), sess.Vendor.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "vendor email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var req api.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a vendor account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				pw, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				req.Password = pw
			}
			return withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				sess, err := session.Register(ctx, env.Client, env.Session, req)
				if err != nil {
					return authError(err, "Registration failed")
				}
				env.Log.Info().Int64("vendor", sess.Vendor.ID).Msg("registered")
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (vendor %d)\n", vendorName(sess.Vendor), sess.Vendor.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Customers join at %s\n", env.Config.JoinURL(sess.Vendor.ID))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.BusinessName, "business", "", "business name")
	cmd.Flags().StringVar(&req.ContactName, "contact", "", "contact name")
	cmd.Flags().StringVar(&req.Email, "email", "", "vendor email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&req.SubscriptionPlan, "plan", "basic", "subscription plan")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, at least 6 characters (prompted when omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the vendor session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(ctx context.Context, env *app.Env) error {
				if err := env.Session.Clear(); err != nil {
					return err
				}
				env.Log.Info().Msg("logged out")
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return nil
			})
		},
	}
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(cmd *cobra.Command) (string, error) {
	fd := os.Stdin.Fd()
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func authError(err error, fallback string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(api.UserMessage(err, fallback))
	}
	return err
}

func vendorName(v api.Vendor) string {
	if name := strings.TrimSpace(v.BusinessName); name != "" {
		return name
	}
	return v.Email
}
