package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oukeidos/caplet/internal/apperrors"
	"github.com/oukeidos/caplet/internal/identity"
	"github.com/oukeidos/caplet/internal/logger"
)

func newLoginCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in and cache the session token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCredentialCommand(cmd, args, opts, false)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newRegisterCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [email]",
		Short: "Create an account and sign in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCredentialCommand(cmd, args, opts, true)
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runCredentialCommand(cmd *cobra.Command, args []string, opts *globalOptions, register bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	emailArg := ""
	if len(args) > 0 {
		emailArg = args[0]
	}
	email, password, err := promptCredentials(emailArg)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	client := identity.NewClient(cfg.IdentityURL)
	var session *identity.Session
	if register {
		session, err = client.Register(ctx, email, password)
	} else {
		session, err = client.SignIn(ctx, email, password)
	}
	if err != nil {
		return fmt.Errorf("%s", apperrors.PublicMessage(err))
	}

	if err := saveToken(session.Token); err != nil {
		logger.Warn("Could not cache the session token", "error", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", session.User.Email)
	return nil
}

func newLogoutCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the cached session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			token, ok := loadToken(true)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}

			ctx, stop := signalContext()
			defer stop()

			// The remote call is best effort; the local session is
			// cleared regardless.
			if err := identity.NewClient(cfg.IdentityURL).SignOut(ctx, token); err != nil {
				logger.Warn("Remote sign-out failed", "error", err)
			}
			if err := clearToken(); err != nil {
				return fmt.Errorf("failed to clear cached session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func newWhoamiCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			token, ok := loadToken(true)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}

			ctx, stop := signalContext()
			defer stop()

			id, err := identity.NewClient(cfg.IdentityURL).CurrentUser(ctx, token)
			if err != nil {
				return fmt.Errorf("%s", apperrors.PublicMessage(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", id.Email, id.ID)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
