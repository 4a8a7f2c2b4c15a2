package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"katalog/internal/media"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// RenderDetail renders a detail record for terminal display.
func RenderDetail(d media.Detail) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n")

	meta := []string{}
	if d.Year != "" {
		meta = append(meta, d.Year)
	}
	if d.Rating != "" && d.Rating != "0" {
		meta = append(meta, "★ "+d.Rating)
	}
	if d.Genre != "" {
		meta = append(meta, d.Genre)
	}
	meta = append(meta, d.Type)
	b.WriteString(metaStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	if d.Description != "" {
		width, _ := termSize()
		if width > 100 {
			width = 100
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width - 2).Render(d.Description))
		b.WriteString("\n")
	}

	if d.Director != "" {
		fmt.Fprintf(&b, "\n%s %s", labelStyle.Render("Director:"), d.Director)
	}
	if d.Cast != "" {
		fmt.Fprintf(&b, "\n%s %s", labelStyle.Render("Cast:"), d.Cast)
	}
	b.WriteString("\n")

	return b.String()
}

// EpisodeOption formats an episode as a picker row. Unplayable
// episodes are flagged so the user sees the condition before choosing.
func EpisodeOption(e media.Episode) Option {
	title := fmt.Sprintf("Episode %d", e.Number)
	if e.Title != "" && e.Title != "Episode" {
		title = fmt.Sprintf("Episode %d: %s", e.Number, e.Title)
	}
	desc := ""
	if !e.Playable() {
		desc = warnStyle.Render("no working source")
	}
	return Option{Title: title, Desc: desc}
}

// Warn renders a warning line.
func Warn(msg string) string {
	return warnStyle.Render(msg)
}
