package cmd

import (
	"strconv"

	"table-pack-maker/feature/pack"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderPlan lists the selected folders with the pack directory each one gets
// and the number of table charts it contributes.
func renderPlan(res *pack.FindResult) string {
	targets := pack.TargetNames(res.SelectedFolders)
	rows := make([][]string, 0, len(targets))
	for i, t := range targets {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Name,
			t.Source,
			strconv.Itoa(res.Covered[t.Source]),
		})
	}
	return renderTable(
		[]string{"#", "Pack Folder", "Source", "Charts"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	)
}

// renderMissing lists the charts no folder covers.
func renderMissing(res *pack.FindResult) string {
	rows := make([][]string, 0, len(res.MissingCharts))
	for _, c := range res.MissingCharts {
		rows = append(rows, []string{res.Symbol + c.Level, c.Title, c.Hash})
	}
	return renderTable([]string{"Level", "Title", "Hash"}, rows, nil)
}
