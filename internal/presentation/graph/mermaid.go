// Package graph renders questionnaire definitions as Mermaid
// flowcharts for documentation and review.
package graph

import (
	"fmt"
	"strings"

	"github.com/bonsono/sonolog/pkg/domain"
)

// Overlay contains session state to visualize on the flowchart.
type Overlay struct {
	VisitedNodes []domain.NodeID
	CurrentNode  domain.NodeID
}

// GenerateMermaid produces a Mermaid flowchart from a questionnaire.
// Shapes are semantic:
//   - yes/no question: [/Parallelogram/]
//   - multiple choice: [[Subroutine]]
//   - terminal: ((Circle))
//
// Yes/no branches are labeled edges; overlay styles mark visited and
// current nodes when provided.
func GenerateMermaid(nodes []domain.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	terminals := make(map[domain.NodeID]bool)

	for _, node := range nodes {
		opener, closer := "[/", "/]"
		if node.Kind == domain.KindMultipleChoice {
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", mermaidID(node.ID), opener, escapeLabel(node.Prompt), closer))

		switch r := node.Route.(type) {
		case domain.ConditionalNext:
			writeEdge(&sb, node.ID, r.NextYes, "sim", terminals)
			writeEdge(&sb, node.ID, r.NextNo, "não", terminals)
		case domain.FixedNext:
			writeEdge(&sb, node.ID, r.Next, "", terminals)
		}
	}

	for id := range terminals {
		label := "Fim"
		if id == domain.TerminalNoInsomnia {
			label = "Fim: sem insônia"
		}
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", mermaidID(id), label))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := mermaidID(id)
			if !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}
		sb.WriteString(fmt.Sprintf("    class %s current;\n", mermaidID(overlay.CurrentNode)))
	}

	return sb.String()
}

func writeEdge(sb *strings.Builder, from, to domain.NodeID, label string, terminals map[domain.NodeID]bool) {
	if to.IsTerminal() {
		terminals[to] = true
	}
	arrow := "-->"
	if label != "" {
		arrow = fmt.Sprintf("-- \"%s\" -->", label)
	}
	sb.WriteString(fmt.Sprintf("    %s %s %s\n", mermaidID(from), arrow, mermaidID(to)))
}

// mermaidID maps node ids onto Mermaid-safe identifiers; terminals get
// names instead of negative numbers.
func mermaidID(id domain.NodeID) string {
	switch id {
	case domain.TerminalCompleted:
		return "end_completed"
	case domain.TerminalNoInsomnia:
		return "end_no_insomnia"
	default:
		return fmt.Sprintf("q%d", int(id))
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
