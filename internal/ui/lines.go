package ui

import (
	"fmt"
	"strings"

	"brains3d/internal/core"
)

// MinHeight is the smallest screen height that fits the HUD text.
const MinHeight = 300

const lineHeight = 16

var keyHelp = []string{
	"space  play / pause",
	"n      single step",
	"r      reset",
	"s      reset, new seed",
	"click  toggle cell",
	"q      quit",
}

// formatLines renders a parameter snapshot as HUD text lines.
func formatLines(name string, snap core.ParameterSnapshot) []string {
	lines := []string{strings.ToUpper(name), ""}
	for _, g := range snap.Groups {
		lines = append(lines, g.Name)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
		lines = append(lines, "")
	}
	return append(lines, keyHelp...)
}
