package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/oukeidos/caplet/internal/language"
)

func newLangsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "langs",
		Short: "List supported display languages",
		Run: func(cmd *cobra.Command, args []string) {
			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Code", "Name", "Native Name"})
			for _, l := range language.Sorted() {
				tw.AppendRow(table.Row{string(l.Code), l.Name, l.NativeName})
			}
			tw.SetColumnConfigs([]table.ColumnConfig{
				{Number: 1, Align: text.AlignLeft},
				{Number: 2, Align: text.AlignLeft},
				{Number: 3, Align: text.AlignLeft},
			})
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
