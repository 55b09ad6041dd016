package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/fixtures"
	"github.com/JonMunkholm/storefront/internal/i18n"
	"github.com/JonMunkholm/storefront/internal/store"
)

func (a *app) newMigrateCommand() *cobra.Command {
	var status bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := a.openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if status {
				return store.MigrationStatus(ctx, pool)
			}
			if err := store.Migrate(ctx, pool); err != nil {
				return err
			}
			slog.Info("migrations applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "Print migration status instead of migrating")
	return cmd
}

func (a *app) newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Migrate, then replace every record kind with the bundled fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := a.openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := store.Migrate(ctx, pool); err != nil {
				return err
			}
			mem, err := core.LoadFixtures(fixtures.FS)
			if err != nil {
				return err
			}
			n, err := store.Seed(ctx, pool, mem)
			if err != nil {
				return err
			}
			slog.Info("fixtures seeded", "kinds", len(mem.Kinds()), "records", n)
			return nil
		},
	}
}

func (a *app) newListsCommand() *cobra.Command {
	var (
		portal string
		lang   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Print the registered lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := core.All()
			if portal != "" {
				p, err := core.ParsePortal(portal)
				if err != nil {
					return err
				}
				infos = core.ByPortal(p)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				var list []core.ListInfo
				for _, l := range infos {
					list = append(list, l.Info())
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			l := i18n.Parse(lang)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PORTAL\tKEY\tKIND\tGROUP\tLABEL")
			for _, list := range infos {
				info := list.Info()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					info.Portal, info.Key, info.Kind, info.Group.In(l), info.Label.In(l))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&portal, "portal", "", "Only lists of this portal (admin, seller, customer)")
	cmd.Flags().StringVar(&lang, "lang", "en", "Label language (en, ar)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
