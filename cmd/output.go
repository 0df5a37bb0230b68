package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sells-group/screener-cli/internal/model"
	"github.com/sells-group/screener-cli/internal/ticker"
)

var (
	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	neutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	emptyStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("#F59E0B"))
)

type column struct {
	title string
	width int
}

var columns = []column{
	{"#", 3},
	{"Code", 7},
	{"Exch", 5},
	{"Name", 12},
	{"Signal", 9},
	{"Conf", 5},
	{"Source", 18},
	{"Reason", 48},
}

// cell pads s to width display columns, keeping only the first wrapped line.
func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).MaxHeight(1).Render(strings.ReplaceAll(s, "\n", " "))
}

func signalStyle(t model.SignalType) lipgloss.Style {
	switch t {
	case model.SignalPositive:
		return positiveStyle
	case model.SignalNegative:
		return negativeStyle
	default:
		return neutralStyle
	}
}

// writeTable renders signals as a fixed-width table.
func writeTable(w io.Writer, signals []model.StockSignal) error {
	if len(signals) == 0 {
		_, err := fmt.Fprintln(w, emptyStyle.Render("No stocks found."))
		return err
	}

	var b strings.Builder
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = headerStyle.Render(cell(c.title, c.width))
	}
	b.WriteString(strings.Join(header, " "))
	b.WriteString("\n")

	for i, s := range signals {
		row := []string{
			cell(fmt.Sprintf("%d", i+1), columns[0].width),
			cell(s.Code, columns[1].width),
			cell(ticker.Exchange(s.Code), columns[2].width),
			cell(s.Name, columns[3].width),
			signalStyle(s.Type).Render(cell(string(s.Type), columns[4].width)),
			cell(fmt.Sprintf("%.2f", s.Confidence), columns[5].width),
			cell(s.Source, columns[6].width),
			cell(s.Reason, columns[7].width),
		}
		b.WriteString(strings.TrimRight(strings.Join(row, " "), " "))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeCodes prints one code per line, or a JSON array.
func writeCodes(w io.Writer, codes []string, asJSON bool) error {
	if asJSON {
		return writeJSON(w, codes)
	}
	for _, c := range codes {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}
