// pkg/prompt/theme.go

package prompt

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrompt = lipgloss.Color("#00ffff") // Cyan
	ColorError  = lipgloss.Color("#ff0000") // Red
)

// Theme decorates prompt messages and rejection messages.
type Theme struct {
	enabled   bool
	prompt    lipgloss.Style
	rejection lipgloss.Style
}

// NewTheme returns a Theme that styles text only when enabled.
func NewTheme(enabled bool) Theme {
	return Theme{
		enabled:   enabled,
		prompt:    lipgloss.NewStyle().Bold(true).Foreground(ColorPrompt),
		rejection: lipgloss.NewStyle().Foreground(ColorError),
	}
}

// Message styles a prompt message. Trailing whitespace and newlines are
// written unstyled so the cursor lands where the plain message would leave
// it.
func (t Theme) Message(s string) string {
	if !t.enabled {
		return s
	}
	body := strings.TrimRight(s, " \n")
	return t.prompt.Render(body) + s[len(body):]
}

// Rejection styles a validation failure message.
func (t Theme) Rejection(s string) string {
	if !t.enabled {
		return s
	}
	return t.rejection.Render(s)
}
