package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/roomfinder/internal/output"
	"github.com/jackzampolin/roomfinder/internal/schedule"
)

var (
	recordsSort string
	recordsDesc bool
)

var recordsCmd = &cobra.Command{
	Use:   "records <schedule.xlsx>",
	Short: "List the exams in a schedule",
	Long: `Read an exam schedule and print its exams in canonical form.

Examples:
  roomfinder records midterm.xlsx
  roomfinder records midterm.xlsx --sort room --desc -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := schedule.ParseSortKey(recordsSort)
		if err != nil {
			return err
		}
		order := schedule.Ascending
		if recordsDesc {
			order = schedule.Descending
		}

		sess, err := loadSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		sess.SetSort(key, order)
		return output.Print(sess.Records())
	},
}

func init() {
	recordsCmd.Flags().StringVar(&recordsSort, "sort", string(schedule.SortByDate), "sort by course, date, time or room")
	recordsCmd.Flags().BoolVar(&recordsDesc, "desc", false, "sort descending")
}
