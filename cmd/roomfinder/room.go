package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/roomfinder/internal/output"
	"github.com/jackzampolin/roomfinder/internal/schedule"
	"github.com/jackzampolin/roomfinder/internal/svcctx"
)

var (
	roomCourse  string
	roomID      string
	roomSection string
)

type roomOutput struct {
	Course    string `json:"course" yaml:"course"`
	StudentID string `json:"student_id" yaml:"student_id"`
	Section   string `json:"section,omitempty" yaml:"section,omitempty"`
	Room      string `json:"room" yaml:"room"`
}

var roomCmd = &cobra.Command{
	Use:   "room <schedule.xlsx>",
	Short: "Find the room a student sits an exam in",
	Long: `Resolve the exam room of one course for one student.

The course may be given by its full name, code or title.

Examples:
  roomfinder room midterm.xlsx --course CSE251 --id 011221320
  roomfinder room midterm.xlsx --course "CSE251 Data Structures" --id 011221320 --section B`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if roomCourse == "" {
			return fmt.Errorf("--course is required")
		}
		sess, err := loadSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		course := roomCourse
		if res := sess.Search(roomCourse); res.Exact != nil {
			course = res.Exact.Course
		}
		room := schedule.ResolveRoom(sess.Records(), schedule.RoomQuery{
			Course:    course,
			StudentID: roomID,
			Section:   roomSection,
		}, svcctx.LoggerFrom(cmd.Context()))

		return output.Print(roomOutput{
			Course:    course,
			StudentID: roomID,
			Section:   roomSection,
			Room:      room,
		})
	},
}

func init() {
	roomCmd.Flags().StringVar(&roomCourse, "course", "", "course name, code or title")
	roomCmd.Flags().StringVar(&roomID, "id", "", "student ID")
	roomCmd.Flags().StringVar(&roomSection, "section", "", "section, when known")
}
