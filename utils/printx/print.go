package printx

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type Color string

const (
	ColorGray   Color = "245"
	ColorYellow Color = "214"
	ColorGreen  Color = "42"
	ColorRed    Color = "203"
	ColorCyan   Color = "87"
)

func PrintStandardHeader(w io.Writer, header string) {
	hBar := strings.Repeat("-", 80)
	fmt.Fprintln(w, "\n"+hBar+"\n"+header+"\n"+hBar)
}

func PrintSection(w io.Writer, header string, body string) {
	PrintStandardHeader(w, header)
	fmt.Fprintln(w, body)
}

// PrintInColor degrades to plain text when w is not a color terminal.
func PrintInColor(w io.Writer, color Color, text string) {
	fmt.Fprintln(w, lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text))
}

// PrintTable renders rows under headers with a plain box border.
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell.Bold(true)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	fmt.Fprintln(w, t.Render())
}
