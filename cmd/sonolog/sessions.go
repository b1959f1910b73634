package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bonsono/sonolog/internal/adapters/file"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage persisted assessment sessions",
	Long:  `List, inspect, and remove in-flight assessment sessions stored on disk.`,
}

var sessionsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all in-flight sessions",
	Run: func(cmd *cobra.Command, args []string) {
		store := getStore(cmd)
		sessions, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No in-flight sessions found.")
			return
		}

		fmt.Println("In-flight sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
	},
}

var sessionsInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID := args[0]
		store := getStore(cmd)

		state, err := store.Load(cmd.Context(), sessionID)
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling state: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var sessionsRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := getStore(cmd)
		hasError := false

		for _, sessionID := range args {
			if err := store.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", sessionID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", sessionID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsLsCmd)
	sessionsCmd.AddCommand(sessionsInspectCmd)
	sessionsCmd.AddCommand(sessionsRmCmd)
}

func getStore(cmd *cobra.Command) *file.Store {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = ".sonolog"
	}
	return file.New(dataDir)
}
