package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bonsono/sonolog/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "sonolog",
	Short: "Sonolog is an adaptive insomnia assessment engine",
	Long: `Sonolog walks a respondent through an adaptive insomnia questionnaire,
branching on each answer, and produces a clinical-style anamnesis report.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("data-dir", ".sonolog", "Directory for sessions and the profile archive")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for session storage (or SONOLOG_REDIS_ADDR)")
}

// engineConfig assembles the persistence configuration from flags and
// environment. The encryption key only travels via environment so it
// never shows up in shell history.
func engineConfig(cmd *cobra.Command) cli.EngineConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	redisAddr, _ := cmd.Flags().GetString("redis")
	if redisAddr == "" {
		redisAddr = os.Getenv("SONOLOG_REDIS_ADDR")
	}
	return cli.EngineConfig{
		DataDir:       dataDir,
		RedisAddr:     redisAddr,
		RedisPassword: os.Getenv("SONOLOG_REDIS_PASSWORD"),
		EncryptionKey: os.Getenv("SONOLOG_ENCRYPTION_KEY"),
	}
}
