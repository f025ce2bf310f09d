package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cinelookup/internal/media"
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
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
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

// candidateTable renders search hits and curated list entries.
func candidateTable(candidates []media.Candidate) string {
	rows := make([][]string, 0, len(candidates))
	for i, c := range candidates {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(c.ID, 10),
			c.Kind.Label(),
			c.Title,
			yearOrDash(c.Year),
			fmt.Sprintf("%.1f", c.VoteAverage),
			fmt.Sprintf("%.1f", c.Popularity),
		})
	}
	return renderTable(
		[]string{"#", "ID", "Kind", "Title", "Year", "Rating", "Popularity"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}

// imageTable renders one side of an image manifest.
func imageTable(label string, refs []media.ImageRef) string {
	rows := make([][]string, 0, len(refs))
	for _, ref := range refs {
		lang := ref.Language
		if lang == "" {
			lang = "-"
		}
		rows = append(rows, []string{
			label,
			ref.FilePath,
			fmt.Sprintf("%dx%d", ref.Width, ref.Height),
			lang,
			fmt.Sprintf("%.1f", ref.VoteAverage),
			strconv.FormatInt(ref.VoteCount, 10),
		})
	}
	return renderTable(
		[]string{"Type", "Path", "Size", "Lang", "Score", "Votes"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight},
	)
}
