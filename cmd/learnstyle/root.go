package main

import (
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "learnstyle",
	Short:        "Adaptive learning quiz service",
	Long:         "learnstyle serves AI-generated diagnostic quizzes and records how each learner answers them.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.InitLogger(config.Load().Env)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lambdaCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(versionCmd)
}
