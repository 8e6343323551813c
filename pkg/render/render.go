// Package render turns row sets into text tables.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/kubev2v/node-inspector/internal/models"
)

// SectionPrefix starts the header line written before each table.
const SectionPrefix = "----------------- "

// RowSet writes rs as a bordered text table followed by a "(N rows)" footer.
// Column names are written as reported by the database.
func RowSet(w io.Writer, rs *models.RowSet) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(rs.Columns)
	table.AppendBulk(rs.Strings())
	table.Render()

	_, err := fmt.Fprintf(w, "(%d rows)\n", rs.Len())
	return err
}

// Section writes the header line naming a table.
func Section(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, "%s%s\n", SectionPrefix, name)
	return err
}

// ColoredSection writes the header line in bold cyan. Colors are dropped
// automatically when w is not a terminal.
func ColoredSection(w io.Writer, name string) error {
	_, err := color.New(color.FgCyan, color.Bold).Fprintf(w, "%s%s\n", SectionPrefix, name)
	return err
}

// List writes one value per line.
func List(w io.Writer, values []string) error {
	if len(values) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(values, "\n")+"\n")
	return err
}

// KeyValues writes a two column table, rows in the given order.
func KeyValues(w io.Writer, header [2]string, rows [][2]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header[:])
	for _, r := range rows {
		table.Append(r[:])
	}
	table.Render()
}
