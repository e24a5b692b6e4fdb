package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hydrant/internal/state"
)

const logo = "hydrant"

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	parts := []string{styles.Logo.Render(logo)}
	if snap.HasVersion {
		parts = append(parts, styles.Text.Render(fmt.Sprintf("hydrus v%d", snap.Version.HydrusVersion)),
			styles.MutedText.Render(fmt.Sprintf("API %d", snap.Version.Version)))
	}

	switch {
	case snap.IsOffline():
		parts = append(parts, styles.DangerText.Render("offline"))
	case snap.LastError != nil:
		parts = append(parts, styles.WarningText.Render("error"))
	case snap.HasVersion:
		parts = append(parts, styles.SuccessText.Render("online"))
	default:
		parts = append(parts, styles.MutedText.Render("connecting"))
	}

	parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d pages", len(snap.Pages))))
	if !snap.LastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render("updated "+snap.LastUpdated.Format(time.TimeOnly)))
	}

	line := styles.Header.Width(m.width).Render(strings.Join(parts, "  "))

	detail := ""
	if snap.LastError != nil {
		detail = styles.DangerText.Render(truncate(snap.LastError.Error(), m.width-2))
	}
	return line + "\n" + lipgloss.NewStyle().Padding(0, 1).Render(detail)
}

func (m Model) renderPages() string {
	styles := m.theme.Styles()
	rows := m.snapshot.Pages
	if len(rows) == 0 {
		return styles.MutedText.Padding(0, 1).Render("No pages.")
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, m.renderRow(styles, row, i == m.selected))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(styles Styles, row state.PageRow, cursor bool) string {
	marker := "  "
	if row.Selected {
		marker = "● "
	}
	name := strings.Repeat("  ", row.Depth) + marker + row.Name

	var b strings.Builder
	if cursor {
		b.WriteString(styles.Selected.Render(" " + name + " "))
	} else {
		b.WriteString(styles.Text.Render(" " + name + " "))
	}
	b.WriteString(" ")
	b.WriteString(styles.PageTypeStyle(row.Type).Render(row.Type.String()))
	if m.showKeys && row.Key != "" {
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Render(row.Key))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.help.ShowAll {
		return styles.Footer.Render(m.help.View(m.keys))
	}

	left := m.help.View(m.keys)
	if m.notice != "" {
		style := styles.AccentText
		if m.noticeIsErr {
			style = styles.DangerText
		}
		left = style.Render(m.notice) + "  " + left
	}
	return styles.Footer.Render(left)
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return string(r[:min(len(r), width)])
	}
	return string(r[:width-1]) + "…"
}
