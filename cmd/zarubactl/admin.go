package main

import (
	"fmt"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/auth"
	"github.com/Ars145/ZarubaProfile-sub000/internal/database"
	"github.com/spf13/cobra"
)

func newTokenCmd(opts *options) *cobra.Command {
	var ttl time.Duration

	token := &cobra.Command{
		Use:   "token",
		Short: "Manage API bearer tokens",
	}

	issue := &cobra.Command{
		Use:   "issue <playerId>",
		Short: "Issue a bearer token for a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := auth.NewTokenService(opts.tokenKey, ttl)
			if err != nil {
				return err
			}
			signed, err := tokens.Issue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	issue.Flags().StringVar(&opts.tokenKey, "key", envOr("AUTH_TOKEN_KEY", ""), "64 hex character token key")
	issue.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	token.AddCommand(issue)
	return token
}

func newMigrateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sqlDB, err := database.Open(opts.dbDriver, opts.dbDSN, opts.logger())
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s database is up to date\n", opts.dbDriver)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.dbDriver, "driver", envOr("DB_DRIVER", database.DriverSQLite), "sqlite3 or postgres")
	cmd.Flags().StringVar(&opts.dbDSN, "dsn", envOr("DB_DSN", "file:zaruba.db?_foreign_keys=on&_busy_timeout=5000"), "database DSN")
	return cmd
}
