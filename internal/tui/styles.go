package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the lipgloss styles for one color scheme.
type Theme struct {
	Name string

	Correct     lipgloss.Style
	Incorrect   lipgloss.Style
	Extra       lipgloss.Style
	Pending     lipgloss.Style
	CurrentWord lipgloss.Style
	Footer      lipgloss.Style
	Status      lipgloss.Style
	Modal       lipgloss.Style
	ModalTitle  lipgloss.Style
	ModalValue  lipgloss.Style
}

// LightTheme returns the light color scheme.
func LightTheme() Theme {
	return Theme{
		Name:        "light",
		Correct:     lipgloss.NewStyle().Foreground(lipgloss.Color("#1E8449")),
		Incorrect:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C0392B")),
		Extra:       lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("#5C5C5C")),
		CurrentWord: lipgloss.NewStyle().Foreground(lipgloss.Color("#8A6D1F")),
		Footer:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("#C0392B")),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#8A6D1F")).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#1E8449")).Bold(true),
		ModalValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#222222")).Bold(true),
	}
}

// DarkTheme returns the dark color scheme.
func DarkTheme() Theme {
	return Theme{
		Name:        "dark",
		Correct:     lipgloss.NewStyle().Foreground(lipgloss.Color("#34EB55")),
		Incorrect:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4500")),
		Extra:       lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		CurrentWord: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
		Footer:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("#34EB55")).Bold(true),
		ModalValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
	}
}

// ThemeByName resolves "light" or "dark".
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "light":
		return LightTheme(), nil
	case "dark":
		return DarkTheme(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (expected light or dark)", name)
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t.Name == "dark" {
		return LightTheme()
	}
	return DarkTheme()
}
