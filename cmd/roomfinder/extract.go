package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/roomfinder/internal/output"
	"github.com/jackzampolin/roomfinder/internal/routine"
	"github.com/jackzampolin/roomfinder/internal/svcctx"
)

var extractText bool

type extractOutput struct {
	StudentID string           `json:"student_id,omitempty" yaml:"student_id,omitempty"`
	Pages     int              `json:"pages" yaml:"pages"`
	Courses   []routine.Course `json:"courses" yaml:"courses"`
	Text      string           `json:"text,omitempty" yaml:"text,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract <routine.pdf>",
	Short: "Extract courses and sections from a class routine",
	Long: `Read a class routine PDF and print the student ID and the
course and section pairs found in it.

Examples:
  roomfinder extract routine.pdf
  roomfinder extract routine.pdf --text -v`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		text, err := readRoutine(ctx, args[0])
		if err != nil {
			return err
		}

		cfg := svcctx.ConfigFrom(ctx)
		out := extractOutput{
			Pages:   text.Pages,
			Courses: routine.ExtractCourses(text, cfg.ExtractOptions(svcctx.LoggerFrom(ctx))),
		}
		out.StudentID, _ = routine.FindStudentID(text)
		if extractText {
			out.Text = text.Flat
		}
		return output.Print(out)
	},
}

func init() {
	extractCmd.Flags().BoolVar(&extractText, "text", false, "include the extracted text")
}
