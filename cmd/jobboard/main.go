package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dtroode/jobboard/internal/config"
	"github.com/dtroode/jobboard/internal/identity"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var location string

	root := &cobra.Command{
		Use:          "jobboard",
		Short:        "Job board session client",
		Version:      fmt.Sprintf("%s (%s, %s)", buildVersion, buildDate, buildCommit),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&location, "at", "/", "location the client starts at")

	withApp := func(run func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewClientConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, location, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()
			return run(cmd.Context(), a, cmd, args)
		}
	}

	root.AddCommand(
		newLoginCmd(withApp),
		newLogoutCmd(withApp),
		newStatusCmd(withApp),
		newVisitCmd(withApp),
	)
	return root
}

type runner func(run func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error

func newLoginCmd(withApp runner) *cobra.Command {
	var email, password, redirect string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the issued token",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			token, err := a.api.Login(ctx, email, password)
			if errors.Is(err, identity.ErrLoginRejected) {
				return fmt.Errorf("invalid email or password")
			}
			if err != nil {
				return err
			}
			a.controller.Login(ctx, token, redirect)
			return printSession(cmd.OutOrStdout(), a)
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&redirect, "redirect", "", "location to open after login")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(withApp runner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the persisted token",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			a.controller.Logout(ctx)
			return printSession(cmd.OutOrStdout(), a)
		}),
	}
}

func newStatusCmd(withApp runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Validate the persisted token and show the session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			a.controller.Start(ctx)
			return printSession(cmd.OutOrStdout(), a)
		}),
	}
}

func newVisitCmd(withApp runner) *cobra.Command {
	return &cobra.Command{
		Use:   "visit LOCATION",
		Short: "Open a location with the persisted session and follow redirects",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			a.controller.Start(ctx)
			a.controller.LocationChanged(ctx, args[0])
			return printSession(cmd.OutOrStdout(), a)
		}),
	}
}

type sessionView struct {
	Location string         `json:"location"`
	User     *identity.User `json:"user"`
}

func printSession(w io.Writer, a *app) error {
	s := a.controller.Session()
	view := sessionView{Location: a.controller.Location()}
	if s.Identity != nil {
		view.User = identity.FromIdentity(*s.Identity)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
