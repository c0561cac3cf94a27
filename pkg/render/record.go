// Package render formats tweet records for console display.
package render

import (
	"fmt"
	"strings"

	"github.com/birdql/birdql/pkg/corpus"
	"github.com/charmbracelet/lipgloss"
)

var (
	idStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	blockStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	footerStyle = lipgloss.NewStyle().
			Bold(true).
			Margin(1, 0, 0, 0)
)

// Record renders one record as a bordered block.
func Record(r *corpus.Record) string {
	var b strings.Builder

	b.WriteString(idStyle.Render("Record ID: "+r.ID) + "\n")
	writeField(&b, "Created at", r.CreatedAt)
	writeField(&b, "Text", r.Text)
	writeField(&b, "Retweet count", fmt.Sprintf("%d", r.RetweetCount))
	writeField(&b, "Name", r.Name)
	writeField(&b, "Location", r.Location)
	if r.Description != "" {
		b.WriteString(metaStyle.Render("Description: "+r.Description) + "\n")
	}
	if r.URL != "" {
		b.WriteString(urlStyle.Render("Url: "+r.URL) + "\n")
	}

	return blockStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label+": ") + value + "\n")
}

// Footer renders the closing result count line.
func Footer(n int) string {
	if n == 1 {
		return footerStyle.Render("1 record found.")
	}
	return footerStyle.Render(fmt.Sprintf("%d records found.", n))
}
