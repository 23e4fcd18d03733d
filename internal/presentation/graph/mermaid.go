package graph

import (
	"fmt"
	"strings"
)

// Overlay marks states on the diagram.
type Overlay struct {
	Visited []string
	Current string
}

// GenerateMermaid produces a Mermaid stateDiagram-v2 from an observed graph.
// The initial state gets an edge from [*]; edges are labelled with the
// number of times they were taken when greater than one.
// Overlay styles are applied if overlay is not nil.
func GenerateMermaid(s Snapshot, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	for _, state := range s.States {
		fmt.Fprintf(&sb, "    %s: %s\n", sanitizeMermaidID(state), state)
	}
	if s.Initial != "" {
		fmt.Fprintf(&sb, "    [*] --> %s\n", sanitizeMermaidID(s.Initial))
	}
	for _, e := range s.Edges {
		line := fmt.Sprintf("    %s --> %s", sanitizeMermaidID(e.From), sanitizeMermaidID(e.To))
		if e.Count > 1 {
			line += fmt.Sprintf(": x%d", e.Count)
		}
		sb.WriteString(line + "\n")
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text for contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, state := range overlay.Visited {
			id := sanitizeMermaidID(state)
			if id == "" || seen[id] || state == overlay.Current {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited\n", id)
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

// Diagram renders s with its visited and current states highlighted.
func Diagram(s Snapshot) string {
	return GenerateMermaid(s, &Overlay{Visited: s.Visited, Current: s.Current})
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", "*", "_")
	return r.Replace(id)
}
