package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bonsono/sonolog/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive assessment in the terminal",
	Long: `Starts an insomnia assessment in the terminal. Answer yes/no questions
with s/n and multiple-choice ones with comma-separated numbers; type
'voltar' to go back one question.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.RunOptions{Engine: engineConfig(cmd)}
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Gender, _ = cmd.Flags().GetString("gender")
		opts.BirthDate, _ = cmd.Flags().GetString("birth-date")
		opts.Profession, _ = cmd.Flags().GetString("profession")
		opts.City, _ = cmd.Flags().GetString("city")
		opts.State, _ = cmd.Flags().GetString("state")

		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("session", "", "Session ID to resume or pin (empty generates one)")
	runCmd.Flags().Bool("fresh", false, "Discard any existing session with the given ID first")
	runCmd.Flags().Bool("debug", false, "Enable debug logging to stderr")
	runCmd.Flags().String("name", "", "Respondent name")
	runCmd.Flags().String("gender", "", "Respondent gender")
	runCmd.Flags().String("birth-date", "", "Respondent birth date (YYYY-MM-DD)")
	runCmd.Flags().String("profession", "", "Respondent profession")
	runCmd.Flags().String("city", "", "Respondent city")
	runCmd.Flags().String("state", "", "Respondent state")

	// Make 'run' the default if no command is provided
	rootCmd.Run = runCmd.Run
}
