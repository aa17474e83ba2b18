// Package table turns trip records into rows for the CLI table formatter.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders amount in unit with the unit's standard number of
// decimals and thousands grouping, e.g. "JPY 1,000" or "TWD 210.00".
func FormatMoney(unit currency.Unit, amount float64) string {
	scale, _ := currency.Standard.Rounding(unit)
	return printer.Sprintf("%s %s", unit.String(), printer.Sprintf("%."+strconv.Itoa(scale)+"f", amount))
}

// FormatJPY renders a yen amount.
func FormatJPY(amount float64) string {
	return FormatMoney(currency.JPY, amount)
}

// FormatTWD renders a New Taiwan dollar amount.
func FormatTWD(amount float64) string {
	return FormatMoney(currency.TWD, amount)
}

// Dash replaces an empty cell with "-".
func Dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// Check renders a boolean as a check mark.
func Check(b bool) string {
	if b {
		return "✓"
	}
	return ""
}

// Percent renders done out of total as "done/total (p%)".
func Percent(done, total int) string {
	p := 0
	if total > 0 {
		p = done * 100 / total
	}
	return fmt.Sprintf("%d/%d (%d%%)", done, total, p)
}
