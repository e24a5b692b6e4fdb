package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hydrant/api"
)

// Theme defines colors for the page browser.
type Theme struct {
	Name string

	Background    string
	Surface       string
	SelectionBg   string
	SelectionText string
	Border        string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// PageTypeColors colors the page type badge.
	PageTypeColors map[api.PageType]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),

		pageTypeColors: t.PageTypeColors,
		background:     t.Background,
		muted:          t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Frame    lipgloss.Style

	pageTypeColors map[api.PageType]string
	background     string
	muted          string
}

// PageTypeStyle returns the badge style for a page type.
func (s Styles) PageTypeStyle(t api.PageType) lipgloss.Style {
	color := s.pageTypeColors[t]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

var themes = map[string]Theme{
	"Hydrus": hydrusTheme(),
	"Nord":   nordTheme(),
	"Paper":  paperTheme(),
}

var themeOrder = []string{"Hydrus", "Nord", "Paper"}

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func hydrusTheme() Theme {
	return Theme{
		Name: "Hydrus",

		Background:    "#1b1d23",
		Surface:       "#23262e",
		SelectionBg:   "#3a4a6b",
		SelectionText: "#f0f0f0",
		Border:        "#3b3f4a",

		Text:    "#d8dae0",
		Muted:   "#8a8f9c",
		Faint:   "#5f6472",
		Accent:  "#7aa2f7",
		Success: "#9ece6a",
		Warning: "#e0af68",
		Danger:  "#f7768e",

		PageTypeColors: map[api.PageType]string{
			api.PageTypeFileSearch:        "#7aa2f7",
			api.PageTypeURLDownloader:     "#e0af68",
			api.PageTypeGalleryDownloader: "#e0af68",
			api.PageTypeSimpleDownloader:  "#e0af68",
			api.PageTypeThreadWatcher:     "#e0af68",
			api.PageTypeHardDriveImport:   "#9ece6a",
			api.PageTypeDuplicates:        "#bb9af7",
			api.PageTypePetitions:         "#f7768e",
			api.PageTypePageOfPages:       "#8a8f9c",
		},
	}
}

func nordTheme() Theme {
	// https://www.nordtheme.com/docs/colors-and-palettes
	return Theme{
		Name: "Nord",

		Background:    "#2e3440",
		Surface:       "#3b4252",
		SelectionBg:   "#5e81ac",
		SelectionText: "#eceff4",
		Border:        "#4c566a",

		Text:    "#e5e9f0",
		Muted:   "#a7b1c2",
		Faint:   "#616e88",
		Accent:  "#88c0d0",
		Success: "#a3be8c",
		Warning: "#ebcb8b",
		Danger:  "#bf616a",

		PageTypeColors: map[api.PageType]string{
			api.PageTypeFileSearch:        "#88c0d0",
			api.PageTypeURLDownloader:     "#d08770",
			api.PageTypeGalleryDownloader: "#d08770",
			api.PageTypeSimpleDownloader:  "#d08770",
			api.PageTypeThreadWatcher:     "#ebcb8b",
			api.PageTypeHardDriveImport:   "#a3be8c",
			api.PageTypeDuplicates:        "#b48ead",
			api.PageTypePetitions:         "#bf616a",
			api.PageTypePageOfPages:       "#616e88",
		},
	}
}

func paperTheme() Theme {
	return Theme{
		Name: "Paper",

		Background:    "#fafaf7",
		Surface:       "#eeeee8",
		SelectionBg:   "#d0def5",
		SelectionText: "#1d1f24",
		Border:        "#c9c9c0",

		Text:    "#1d1f24",
		Muted:   "#5c5f66",
		Faint:   "#8d9096",
		Accent:  "#1f5fbf",
		Success: "#2e7d32",
		Warning: "#a86400",
		Danger:  "#c62828",

		PageTypeColors: map[api.PageType]string{
			api.PageTypeFileSearch:    "#1f5fbf",
			api.PageTypeURLDownloader: "#a86400",
			api.PageTypeDuplicates:    "#6a3fb5",
			api.PageTypePageOfPages:   "#8d9096",
		},
	}
}
