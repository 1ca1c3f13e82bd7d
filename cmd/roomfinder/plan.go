package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/roomfinder/internal/export"
	"github.com/jackzampolin/roomfinder/internal/output"
	"github.com/jackzampolin/roomfinder/internal/session"
	"github.com/jackzampolin/roomfinder/internal/svcctx"
)

var (
	planRoutine string
	planID      string
	planCourses []string
	planOut     string
)

type planOutput struct {
	StudentID  string                `json:"student_id" yaml:"student_id"`
	Import     *session.ImportReport `json:"import,omitempty" yaml:"import,omitempty"`
	Selections []session.Selection   `json:"selections" yaml:"selections"`
	File       string                `json:"file" yaml:"file"`
}

var planCmd = &cobra.Command{
	Use:   "plan <schedule.xlsx>",
	Short: "Build and print a personal exam schedule",
	Long: `Select courses from a class routine and/or by hand, resolve the
rooms and write a printable exam schedule.

The student ID is read from the routine when present, otherwise --id is
used. Courses given with --course take the form "COURSE:SECTION".

Examples:
  roomfinder plan midterm.xlsx --routine routine.pdf
  roomfinder plan midterm.xlsx --id 011221320 --course CSE251:A --course "MAT101:1"
  roomfinder plan midterm.xlsx --routine routine.pdf --out ./schedules`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if planRoutine == "" && len(planCourses) == 0 {
			return fmt.Errorf("nothing to plan: pass --routine or --course")
		}
		ctx := cmd.Context()
		cfg := svcctx.ConfigFrom(ctx)
		logger := svcctx.LoggerFrom(ctx)

		sess, err := loadSession(ctx, args[0])
		if err != nil {
			return err
		}
		if planID != "" {
			if err := sess.ConfirmStudentID(planID); err != nil {
				return err
			}
		}

		var result planOutput
		if planRoutine != "" {
			text, err := readRoutine(ctx, planRoutine)
			if err != nil {
				return err
			}
			report, err := sess.ImportRoutine(text, cfg.ExtractOptions(logger))
			result.Import = report
			switch {
			case err == nil:
				logger.Info("routine imported", "matched", len(report.Matched), "skipped", len(report.Skipped), "unmatched", len(report.Unmatched))
			case errors.Is(err, session.ErrNoneMatched), errors.Is(err, session.ErrNoCoursesFound):
				if len(planCourses) == 0 {
					_ = output.Print(report)
					return err
				}
				logger.Warn("routine added no courses", "error", err, "schedule_sample", report.ScheduleSample)
			default:
				return err
			}
		}

		for _, arg := range planCourses {
			term, section, err := parseCourseArg(arg)
			if err != nil {
				return err
			}
			sel, err := addCourse(sess, term, section)
			if errors.Is(err, session.ErrAlreadySelected) {
				logger.Info("course already selected", "course", term, "section", section)
				continue
			}
			if err != nil {
				return err
			}
			logger.Debug("course added", "course", sel.Course, "room", sel.AssignedRoom)
		}

		sched, err := export.New(sess.State(), time.Now())
		if err != nil {
			return err
		}
		dir := planOut
		if dir == "" {
			dir = cfg.ExportDir(svcctx.HomeFrom(ctx).ExportsDir())
		}
		path, err := sched.Write(dir, cfg.ExportOptions())
		if err != nil {
			return err
		}

		result.StudentID = sess.StudentID()
		result.Selections = sess.Selections()
		result.File = path
		return output.Print(result)
	},
}

func init() {
	planCmd.Flags().StringVar(&planRoutine, "routine", "", "class routine PDF to import courses from")
	planCmd.Flags().StringVar(&planID, "id", "", "student ID to confirm")
	planCmd.Flags().StringArrayVar(&planCourses, "course", nil, `course to add as "COURSE:SECTION" (repeatable)`)
	planCmd.Flags().StringVar(&planOut, "out", "", "output directory (default: export.dir or ~/.roomfinder/exports)")
}

// parseCourseArg splits "COURSE:SECTION" at the last colon.
func parseCourseArg(arg string) (course, section string, err error) {
	i := strings.LastIndex(arg, ":")
	if i < 0 {
		return "", "", fmt.Errorf("invalid course %q: want COURSE:SECTION", arg)
	}
	course, section = strings.TrimSpace(arg[:i]), strings.TrimSpace(arg[i+1:])
	if course == "" || section == "" {
		return "", "", fmt.Errorf("invalid course %q: want COURSE:SECTION", arg)
	}
	return course, section, nil
}

// addCourse picks the one course matching term, chooses its section and
// selects it.
func addCourse(sess *session.Session, term, section string) (session.Selection, error) {
	res := sess.Search(term)
	switch {
	case res.Exact != nil:
	case res.Total == 1:
		if err := sess.SelectCourse(res.Suggestions[0].Course); err != nil {
			return session.Selection{}, err
		}
	case res.Total == 0:
		return session.Selection{}, fmt.Errorf("%w: %s", session.ErrCourseNotFound, term)
	default:
		return session.Selection{}, fmt.Errorf("%q matches %d courses, be more specific", term, res.Total)
	}
	if err := sess.SetSection(section); err != nil {
		return session.Selection{}, err
	}
	return sess.Add()
}
