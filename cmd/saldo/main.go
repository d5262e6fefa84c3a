package main

import (
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"

	"saldo/internal/backend"
	"saldo/internal/cli"
	"saldo/internal/core"
	"saldo/internal/ledger"
	"saldo/internal/services"
)

var ledgerFile string

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger("shell")
	cfg := cli.LoadAndValidateConfig(logger)

	rootCmd := &cobra.Command{
		Use:   "saldo",
		Short: "Single-account ledger with date-filtered history",
		Long: `saldo tracks one account: deposits, withdrawals and a date-stamped
transaction history that can be listed by day, month or year and saved
to a pluggable backend.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			factory := backend.NewFactory(logger.Logger)
			result, err := factory.CreateBackend(ctx, backend.Config{
				Type:          backend.BackendType(cfg.DataBackend),
				SQLiteDBPath:  cfg.SQLiteDBPath,
				DataDirectory: cfg.DataDirectory,
			})
			if err != nil {
				return err
			}
			if result.Cleanup != nil {
				defer result.Cleanup()
			}

			amqpClient := cli.OptionalAMQPClient(logger, cfg)

			svc := services.NewLedgerService(
				ledger.New(core.SystemClock()),
				result.Backend,
				amqpClient,
			)
			defer svc.Close()

			shell := NewShell(svc, os.Stdin, os.Stdout)
			if ledgerFile != "" {
				shell.defaultID = ledgerFile
			}
			return shell.Run(ctx)
		},
	}
	rootCmd.Flags().StringVarP(&ledgerFile, "file", "f", "", "Default id/path offered for save and load.")

	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Shell exited with error", "error", err)
		os.Exit(1)
	}
}
