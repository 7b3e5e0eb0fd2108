package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableColumn describes one listing column. Numeric columns are right
// aligned so counts and confidences line up under their headers.
type tableColumn struct {
	title   string
	numeric bool
}

func column(title string) tableColumn {
	return tableColumn{title: title}
}

func numericColumn(title string) tableColumn {
	return tableColumn{title: title, numeric: true}
}

// renderListing renders scan, catalog, and history rows under the shared
// rounded style. Rows shorter than the column set are padded so partial
// results still render.
func renderListing(columns []tableColumn, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		align := text.AlignLeft
		if col.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

// confidenceCell formats a match confidence for listing rows. Zero renders
// empty so unidentified files carry no score.
func confidenceCell(confidence float64) string {
	if confidence == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", confidence)
}
