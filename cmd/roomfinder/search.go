package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/roomfinder/internal/output"
	"github.com/jackzampolin/roomfinder/internal/schedule"
)

type searchOutput struct {
	schedule.SearchResult `yaml:",inline"`
	// Sections lists the sections available for an exact hit.
	Sections []string `json:"sections,omitempty" yaml:"sections,omitempty"`
}

var searchCmd = &cobra.Command{
	Use:   "search <schedule.xlsx> <query>",
	Short: "Search the schedule for a course",
	Long: `Suggest courses whose name, code or title contains the query.

When the query names a course exactly, its sections are listed too.

Examples:
  roomfinder search midterm.xlsx cse2
  roomfinder search midterm.xlsx "Data Structures"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		res := searchOutput{SearchResult: sess.Search(strings.Join(args[1:], " "))}
		if res.Exact != nil {
			res.Sections = sess.Sections(res.Exact.Course)
		}
		return output.Print(res)
	},
}
