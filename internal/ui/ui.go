// Package ui holds the terminal presentation for the CLI. Core packages log
// through internal/logger and never import this.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
)

// Ok prints a green check line.
func Ok(format string, v ...interface{}) {
	fmt.Println(successStyle.Render("✓ ") + fmt.Sprintf(format, v...))
}

// Fail prints a red cross line.
func Fail(format string, v ...interface{}) {
	fmt.Println(errorStyle.Render("✗ ") + fmt.Sprintf(format, v...))
}

// Warn prints a yellow caution line.
func Warn(format string, v ...interface{}) {
	fmt.Println(warnStyle.Render("! ") + fmt.Sprintf(format, v...))
}

// Step prints a cyan progress line.
func Step(format string, v ...interface{}) {
	fmt.Println(infoStyle.Render("→ ") + fmt.Sprintf(format, v...))
}

// Header prints a section header.
func Header(text string) {
	fmt.Println(headerStyle.Render("=== " + text + " ==="))
}

// Dim prints secondary text, e.g. captured log tails.
func Dim(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Println(mutedStyle.Render(line))
	}
}
