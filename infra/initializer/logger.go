// Package initializer builds the shared pieces the CLI needs before
// any command runs.
package initializer

import (
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// SetupLogger builds the styled slog logger used by the CLI.
func SetupLogger(level string) *slog.Logger {
	styles := log.DefaultStyles()

	infoColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warnColor := lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugColor := lipgloss.AdaptiveColor{Light: "#6B73FF", Dark: "#6B73FF"}

	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").Bold(true).Padding(0, 1).Foreground(infoColor)
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").Bold(true).Padding(0, 1).Foreground(warnColor)
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").Bold(true).Padding(0, 1).Foreground(errorColor)
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").Bold(true).Padding(0, 1).Foreground(debugColor)

	styles.Keys["error"] = lipgloss.NewStyle().Foreground(errorColor)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)

	handler := log.New(os.Stderr)
	handler.SetStyles(styles)
	handler.SetLevel(parseLevel(level))

	return slog.New(handler)
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
