package tui

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tatianab/game-studio/internal/models"
)

var printer = message.NewPrinter(language.English)

func formatMoney(n int) string {
	return printer.Sprintf("$%d", n)
}

// formatDelta lists the non-zero parts of d, e.g. "+10 health, -$30".
func formatDelta(d models.Delta) string {
	var parts []string
	add := func(v int, label string) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%+d %s", v, label))
		}
	}
	add(d.Health, "health")
	add(d.Energy, "energy")
	add(d.Happiness, "happiness")
	if d.Money > 0 {
		parts = append(parts, "+"+formatMoney(d.Money))
	} else if d.Money < 0 {
		parts = append(parts, "-"+formatMoney(-d.Money))
	}
	if len(parts) == 0 {
		return "no effect"
	}
	return strings.Join(parts, ", ")
}

func formatCost(c models.Cost) string {
	var parts []string
	if c.Energy > 0 {
		parts = append(parts, fmt.Sprintf("%d energy", c.Energy))
	}
	if c.Money > 0 {
		parts = append(parts, formatMoney(c.Money))
	}
	if len(parts) == 0 {
		return "free"
	}
	return strings.Join(parts, " + ")
}

// bar draws value out of 100 as a ten-cell gauge.
func bar(value int) string {
	filled := max(0, min(10, value/10))
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
