package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderSuccess renders a success line with a check mark
func RenderSuccess(msg string) string {
	return successStyle.Render("✓ " + msg)
}

// RenderFailure renders a failure line
func RenderFailure(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

// RenderTag renders a tag name
func RenderTag(tag string) string {
	return tagStyle.Render(tag)
}

// RenderURL renders a URL
func RenderURL(url string) string {
	return urlStyle.Render(url)
}

// RenderDim renders de-emphasized text
func RenderDim(msg string) string {
	return dimStyle.Render(msg)
}

// IsInteractive returns true when both stdin and stdout are terminals
func IsInteractive() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}
