package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"treasury/internal/infra"
)

const programName = "treasuryctl"

var globalFlags = struct {
	env string
}{}

func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Operator tools for the treasury governance service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load(globalFlags.env)
		},
	}
	rootCmd.PersistentFlags().StringVar(&globalFlags.env, "env-file", ".env", "dotenv file to load before running")

	rootCmd.AddCommand(
		snapshotCommand(),
		tokenCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		logger := infra.NewLogger(os.Getenv("APP_ENV"))
		logger.Error().Err(err).Str("component", programName).Msg("command failed")
		os.Exit(1)
	}
}
