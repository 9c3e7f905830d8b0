package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

const Star = "\u2726" // ✦

// Banner prints the program banner with a subtitle.
func Banner(w io.Writer, subtitle string) {
	fmt.Fprintf(w, "%s %s %s\n\n", Star, Brand.Sprint("constellation"), Subtle.Sprint(subtitle))
}

// Field prints one aligned "label: value" line.
func Field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %-12s %v\n", label+":", value)
}

// Section prints a heading for a group of fields.
func Section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n  %s\n", Subtle.Sprint(title))
}
