package main

import (
	"github.com/JustJay7/court-scheduler/internal/database"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// caseTable renders one dashboard bucket. Blank dates stay blank.
func caseTable(records []database.CaseRecord) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Appearance", "Date", "Class", "Court File", "Style of Cause", "Reason", "Restriction"})

	for _, r := range records {
		date := ""
		if !r.AppearanceDate.IsZero() {
			date = r.AppearanceDate.Format("2006-01-02")
		}
		tw.AppendRow(table.Row{r.AppearanceID, date, r.CourtClass, r.CourtFileNumber, r.StyleOfCause, r.Reason, r.RestrictionCode})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, WidthMax: 48},
	})
	return tw.Render()
}
