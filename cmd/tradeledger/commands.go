package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/commodity-ledger-go/internal/config"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/postgresengine"
	"github.com/AntonStoeckl/commodity-ledger-go/trading/contract"
)

func newInvokeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <operation> [args...]",
		Short: "Invoke one contract operation and print its result.",
		Long: `Invoke one contract operation with positional arguments, e.g.

  tradeledger invoke createCommodity CORN '{"docType":"commodity","quantity":200,"owner":"Trader3"}'
  tradeledger invoke plusTen CORN

Run "tradeledger operations" to list the operations and their arguments.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withContract(cmd.Context(), func(ctx context.Context, run invokeFunc) error {
				result, err := run(ctx, args[0], args[1:])
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(result))
				return err
			})
		},
	}
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the demo scenario and print every transaction response.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withObservedLedger(cmd.Context(), func(ctx context.Context, ol observedLedger) error {
				return contract.RunDemo(ctx, ol.ledger, cmd.OutOrStdout(), ol.contractOpts...)
			})
		},
	}
}

func newOperationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the contract operations and their arguments.",
		Args:  cobra.NoArgs,
		// no configuration needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range contract.Operations() {
				params, _ := contract.Params(name)
				line := strings.TrimSpace(name + " " + strings.Join(wrapParams(params), " "))
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func wrapParams(params []string) []string {
	wrapped := make([]string, 0, len(params))
	for _, p := range params {
		wrapped = append(wrapped, "<"+p+">")
	}

	return wrapped
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the PostgreSQL DDL for the configured ledger table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// sql.Open does not connect
			db, err := sql.Open("postgres", a.cfg.Postgres.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			l, err := postgresengine.NewLedgerFromSQLDB(db, postgresengine.WithTableName(a.cfg.Postgres.TableName))
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), l.SchemaSQL())
			return err
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and write the tradeledger configuration.",
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := path
			if target == "" {
				userPath, err := config.UserConfigPath()
				if err != nil {
					return err
				}
				target = userPath
			}

			if err := config.WriteConfigFile(&a.cfg, target); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "configuration written to", target)
			return err
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "target file (default is <user config dir>/tradeledger/tradeledger.yaml)")

	cmd.AddCommand(initCmd)

	return cmd
}
