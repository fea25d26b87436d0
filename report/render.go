package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// AutoStyle picks a glamour style from the terminal background.
const AutoStyle = styles.AutoStyle

// CheckStyle reports an error unless style is "", "auto" or one of
// glamour's standard styles.
func CheckStyle(style string) error {
	if style == "" || style == AutoStyle {
		return nil
	}
	if _, ok := styles.DefaultStyles[style]; !ok {
		return fmt.Errorf("unknown style %q", style)
	}
	return nil
}

// Render formats markdown for a terminal. An empty or "auto" style picks
// one from the terminal background; "notty" gives plain text.
func Render(md string, width int, style string) (string, error) {
	if err := CheckStyle(style); err != nil {
		return "", err
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == AutoStyle {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
