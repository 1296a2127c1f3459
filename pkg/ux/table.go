// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DefaultTable returns a table with the deployer's default styling.
// A nil header renders a key/value table.
func DefaultTable(title string, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Title.Align = text.AlignCenter
	t.Style().Title.Format = text.FormatUpper
	t.Style().Options.SeparateRows = true
	if title != "" {
		t.SetTitle(title)
	}
	if header != nil {
		t.AppendHeader(header)
	}
	return t
}

// KeyValueTable renders rows of label/value pairs under [title]
func KeyValueTable(title string, rows [][2]string) string {
	t := DefaultTable(title, nil)
	for _, r := range rows {
		t.AppendRow(table.Row{r[0], r[1]})
	}
	return t.Render()
}
