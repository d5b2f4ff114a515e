package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oukeidos/caplet/internal/docstore"
	"github.com/oukeidos/caplet/internal/geoip"
	"github.com/oukeidos/caplet/internal/identity"
	"github.com/oukeidos/caplet/internal/language"
	"github.com/oukeidos/caplet/internal/localstore"
	"github.com/oukeidos/caplet/internal/logger"
	"github.com/oukeidos/caplet/internal/prefs"
)

func newResolveCmd(opts *globalOptions) *cobra.Command {
	var setLang string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show or set the resolved display language",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			// A cached session upgrades resolution to the account step.
			var id *identity.Identity
			token, _ := loadToken(true)
			if token != "" {
				user, err := identity.NewClient(cfg.IdentityURL).CurrentUser(ctx, token)
				if err != nil {
					logger.Debug("Cached session did not resolve, continuing signed out", "error", err)
				} else {
					id = user
				}
			}

			localPath, err := localstore.DefaultPath()
			if err != nil {
				return err
			}
			resolver := prefs.NewResolver(
				docstore.NewClient(cfg.DocstoreURL, func() string { return token }),
				localstore.Open(localPath),
				func() string { return os.Getenv("LANG") },
				geoip.NewClient(cfg.GeoipURL),
				cfg.CountryTable(),
				language.Code(cfg.DefaultLanguage),
			)

			if setLang != "" {
				code := language.Code(setLang)
				if !language.Supported(code) {
					return fmt.Errorf("unsupported language %q (see 'caplet langs')", setLang)
				}
				if err := resolver.SetLanguage(ctx, id, code); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s\n", code)
				return nil
			}

			code, source := resolver.Resolve(ctx, id)
			lang, _ := language.Get(code)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) via %s\n", lang.Name, code, source)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&setLang, "set", "", "Set the preferred language instead of resolving")
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
