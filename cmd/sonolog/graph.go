package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	presentation "github.com/bonsono/sonolog/internal/presentation/graph"
	"github.com/bonsono/sonolog/pkg/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [file.yaml]",
	Short: "Export the questionnaire graph visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the questionnaire flow.
With no argument it exports the built-in questionnaire.`,
	Run: func(cmd *cobra.Command, args []string) {
		g := graph.Canonical()
		if len(args) > 0 {
			loaded, err := graph.LoadYAMLFile(args[0])
			if err != nil {
				fmt.Printf("Error loading questionnaire: %v\n", err)
				os.Exit(1)
			}
			g = loaded
		}

		fmt.Print(presentation.GenerateMermaid(g.Nodes(), nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
