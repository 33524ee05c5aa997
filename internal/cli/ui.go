package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cloudmazing/kvkapi/pkg/integrations/kvk"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for company names.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for registry numbers.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// =============================================================================
// Status Output
// =============================================================================

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, "  "+styleKey.Render(key)+" "+value)
}

// printNewline prints an empty line.
func printNewline(w io.Writer) {
	fmt.Fprintln(w)
}

// =============================================================================
// Company Output
// =============================================================================

// printCompany prints one company as a titled block.
func printCompany(w io.Writer, c kvk.Company) {
	title := StyleTitle.Render(c.TradeName)
	if c.TradeName == "" {
		title = StyleDim.Render("(no trade name)")
	}
	fmt.Fprintln(w, title)

	printKeyValue(w, "KVK", StyleNumber.Render(c.KvkNumber))
	if c.EstablishmentNumber != "" {
		printKeyValue(w, "Vestiging", StyleNumber.Render(c.EstablishmentNumber))
	}
	for _, a := range c.Addresses {
		label := a.Type
		if label == "" {
			label = "adres"
		}
		printKeyValue(w, label, StyleValue.Render(formatAddress(a)))
	}
	for _, site := range c.Websites {
		printKeyValue(w, "website", StyleLink.Render(site))
	}
}

// printCompanies prints companies separated by blank lines.
func printCompanies(w io.Writer, companies []kvk.Company) {
	for i, c := range companies {
		if i > 0 {
			printNewline(w)
		}
		printCompany(w, c)
	}
}

// formatAddress renders an address on one line, e.g.
// "Teststraat 1, 1234AB Amsterdam, Nederland". Empty parts are left out.
func formatAddress(a kvk.Address) string {
	parts := []string{
		joinNonEmpty(" ", a.Street, a.HouseNumber),
		joinNonEmpty(" ", a.PostalCode, a.City),
		a.Country,
	}
	return joinNonEmpty(", ", parts...)
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
