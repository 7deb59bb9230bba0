// Package display renders status messages and change listings for the
// stagehand CLI, with color output when attached to a terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// FgWhite is the neutral foreground used for secondary text.
const FgWhite = color.FgHiWhite

// StatusType represents different types of status messages.
type StatusType int

// StatusType values enumerate the kinds of status messages that can be rendered.
const (
	StatusInfo StatusType = iota
	StatusSuccess
	StatusWarning
	StatusError
	StatusProgress
)

// StatusRenderer handles rendering status messages.
type StatusRenderer struct {
	out          io.Writer
	colorEnabled bool
}

// NewStatusRenderer creates a new status renderer writing to out.
func NewStatusRenderer(out io.Writer, colorEnabled bool) *StatusRenderer {
	return &StatusRenderer{
		out:          out,
		colorEnabled: colorEnabled,
	}
}

// PrintInfo prints an info message.
func (sr *StatusRenderer) PrintInfo(message string) {
	sr.print(StatusInfo, message)
}

// PrintSuccess prints a success message.
func (sr *StatusRenderer) PrintSuccess(message string) {
	sr.print(StatusSuccess, message)
}

// PrintWarning prints a warning message.
func (sr *StatusRenderer) PrintWarning(message string) {
	sr.print(StatusWarning, message)
}

// PrintError prints an error message.
func (sr *StatusRenderer) PrintError(message string) {
	sr.print(StatusError, message)
}

// PrintProgress prints a progress message.
func (sr *StatusRenderer) PrintProgress(message string) {
	sr.print(StatusProgress, message)
}

// PrintChangeLine prints one itemized change from a transfer preview. The
// action string selects the color: create is green, update yellow, delete red.
func (sr *StatusRenderer) PrintChangeLine(action, path string) {
	attr := FgWhite

	switch action {
	case "create":
		attr = color.FgGreen
	case "update":
		attr = color.FgYellow
	case "delete":
		attr = color.FgRed
	}

	fmt.Fprintf(sr.out, "  %s %s\n", sr.formatMessage(fmt.Sprintf("%-6s", action), attr), path)
}

func (sr *StatusRenderer) print(statusType StatusType, message string) {
	icon := sr.getStatusIcon(statusType)
	attr := sr.getStatusColor(statusType)

	fmt.Fprintln(sr.out, sr.formatMessage(fmt.Sprintf("%s %s", icon, message), attr))
}

// getStatusIcon returns the appropriate icon for a status type.
func (sr *StatusRenderer) getStatusIcon(statusType StatusType) string {
	switch statusType {
	case StatusInfo:
		return "ℹ️"
	case StatusSuccess:
		return "✅"
	case StatusWarning:
		return "⚠️"
	case StatusError:
		return "❌"
	case StatusProgress:
		return "🔄"
	default:
		return "•"
	}
}

// getStatusColor returns the appropriate color for a status type.
func (sr *StatusRenderer) getStatusColor(statusType StatusType) color.Attribute {
	switch statusType {
	case StatusInfo:
		return color.FgCyan
	case StatusSuccess:
		return color.FgGreen
	case StatusWarning:
		return color.FgYellow
	case StatusError:
		return color.FgRed
	case StatusProgress:
		return color.FgBlue
	default:
		return FgWhite
	}
}

// formatMessage applies color formatting if enabled.
func (sr *StatusRenderer) formatMessage(text string, colorAttr color.Attribute) string {
	if !sr.colorEnabled {
		return text
	}

	return color.New(colorAttr).Sprint(text)
}

// CreateBanner creates a decorative banner for the application.
func CreateBanner(title string, colorEnabled bool) string {
	width := 60

	var lines []string

	topBorder := "╭" + strings.Repeat("─", width-2) + "╮"
	if colorEnabled {
		topBorder = color.New(color.FgCyan).Sprint(topBorder)
	}

	lines = append(lines, topBorder)

	padding := (width - len(title) - 2) / 2
	leftPad := strings.Repeat(" ", padding)
	rightPad := strings.Repeat(" ", width-len(title)-padding-2)
	titleLine := "│" + leftPad + title + rightPad + "│"

	if colorEnabled {
		titleLine = color.New(color.FgCyan).Sprint("│") +
			color.New(FgWhite, color.Bold).Sprint(leftPad+title+rightPad) +
			color.New(color.FgCyan).Sprint("│")
	}

	lines = append(lines, titleLine)

	bottomBorder := "╰" + strings.Repeat("─", width-2) + "╯"
	if colorEnabled {
		bottomBorder = color.New(color.FgCyan).Sprint(bottomBorder)
	}

	lines = append(lines, bottomBorder)

	return strings.Join(lines, "\n")
}
