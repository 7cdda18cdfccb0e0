package daylog

import "github.com/charmbracelet/lipgloss"

// Level colors (ANSI 256 palette).
const (
	colorGray   = "245"
	colorYellow = "220"
	colorRed    = "196"
	colorWhite  = "255"
)

var levelStyles = map[Level]lipgloss.Style{
	LevelDebug:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
	LevelWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
	LevelError:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
	LevelCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWhite)).Background(lipgloss.Color(colorRed)),
}

func styleLevel(level Level, text string) string {
	style, ok := levelStyles[level]
	if !ok {
		return text
	}
	return style.Render(text)
}
