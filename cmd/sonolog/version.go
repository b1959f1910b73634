package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bonsono/sonolog"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sonolog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sonolog version %s\n", strings.TrimSpace(sonolog.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
