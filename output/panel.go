package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"toolfinder/lookup"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("214"))
)

// RenderPanel writes the result for query as a bordered terminal panel.
func RenderPanel(w io.Writer, query string, result lookup.Result) error {
	var body strings.Builder
	body.WriteString(titleStyle.Render("Part " + strings.TrimSpace(query)))
	body.WriteString("\n")

	pairs := Pairs(result)
	if len(pairs) == 0 {
		body.WriteString(emptyStyle.Render(NoResultsText))
	} else {
		width := 0
		for _, pair := range pairs {
			width = max(width, lipgloss.Width(pair.Label))
		}
		label := labelStyle.Width(width + 2)
		for i, pair := range pairs {
			if i > 0 {
				body.WriteString("\n")
			}
			body.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(pair.Label), pair.Value))
		}
	}

	if _, err := fmt.Fprintln(w, panelStyle.Render(body.String())); err != nil {
		return fmt.Errorf("write result panel: %w", err)
	}
	return nil
}
