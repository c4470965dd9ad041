package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"radar/internal/discovery"
)

// sourceTable renders the per-connector outcome of a monitor run.
func sourceTable(results []discovery.SourceResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Source", "Candidates", "Status"})
	for _, src := range results {
		status := "ok"
		if src.Err != nil {
			status = src.Err.Error()
		}
		tw.AppendRow(table.Row{src.Name, strconv.Itoa(src.Count), status})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// kvTable renders label/value pairs for the status display.
func kvTable(rows [][2]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Item", "Value"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	return tw.Render()
}
