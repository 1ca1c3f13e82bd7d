package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/roomfinder/internal/config"
	"github.com/jackzampolin/roomfinder/internal/export"
	"github.com/jackzampolin/roomfinder/internal/output"
	"github.com/jackzampolin/roomfinder/internal/routine"
	"github.com/jackzampolin/roomfinder/internal/schedule"
	"github.com/jackzampolin/roomfinder/internal/session"
	"github.com/jackzampolin/roomfinder/internal/svcctx"
)

const shellHelp = `commands:
  load <schedule.xlsx>      replace the exam schedule
  records                   list the exams
  sort <key> [asc|desc]     order exams by course, date, time or room
  id <student id>           enter a student ID
  confirm [student id]      confirm the entered (or given) ID
  search <query>            suggest courses
  pick <n|course>           pick a suggestion or course for adding
  section <section>         choose the section of the picked course
  add                       add the picked course
  list                      list selected courses
  remove <n|id>             remove a selected course
  clear [all]               drop selections (all: reset the session)
  import <routine.pdf>      add courses from a class routine
  export [dir]              write the printable schedule
  state                     show the session
  quit                      leave
`

var shellCmd = &cobra.Command{
	Use:   "shell [schedule.xlsx]",
	Short: "Plan exams interactively",
	Long: `Start an interactive session on an exam schedule.

Config file changes are picked up while the shell runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svcs := svcctx.ServicesFrom(ctx)
		logger := svcctx.LoggerFrom(ctx)

		sess := session.New(session.Options{
			SearchLimit: svcs.Config.Get().Search.Limit,
			Logger:      logger,
		})
		if len(args) == 1 {
			if _, err := sess.IngestFile(args[0]); err != nil {
				return err
			}
		}

		if svcs.Config.ConfigFile() != "" {
			svcs.Config.OnChange(func(cfg *config.Config) {
				sess.SetSearchLimit(cfg.Search.Limit)
				logger.Info("config reloaded", "file", svcs.Config.ConfigFile())
			})
			svcs.Config.WatchConfig()
		}

		sh := &shell{
			ctx:     ctx,
			sess:    sess,
			out:     cmd.OutOrStdout(),
			config:  svcs.Config.Get,
			exports: svcs.Home.ExportsDir(),
			logger:  logger,
			now:     time.Now,
		}
		return sh.run(cmd.InOrStdin())
	},
}

// shell runs line commands against one session.
type shell struct {
	ctx     context.Context
	sess    *session.Session
	out     io.Writer
	config  func() *config.Config
	exports string
	logger  *slog.Logger
	now     func() time.Time

	// suggestions from the last search, for pick by number
	suggestions []schedule.Record
}

func (sh *shell) run(in io.Reader) error {
	fmt.Fprintf(sh.out, "roomfinder shell (%d exams loaded), type help for commands\n", sh.sess.Count())
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			break
		}
		quit, err := sh.exec(scanner.Text())
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
		if sh.ctx.Err() != nil {
			return sh.ctx.Err()
		}
	}
	fmt.Fprintln(sh.out)
	return scanner.Err()
}

// exec runs one command line and reports whether the shell should exit.
func (sh *shell) exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		fmt.Fprint(sh.out, shellHelp)
	case "load":
		return false, sh.load(arg)
	case "records":
		return false, output.Write(sh.out, output.CurrentFormat(), sh.sess.Records())
	case "sort":
		return false, sh.sort(arg)
	case "id":
		if arg == "" {
			return false, errors.New("usage: id <student id>")
		}
		if err := sh.sess.EnterStudentID(arg); err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "student ID %s entered, run confirm\n", arg)
	case "confirm":
		if err := sh.sess.ConfirmStudentID(arg); err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "student ID %s confirmed\n", sh.sess.StudentID())
	case "search":
		sh.search(arg)
	case "pick":
		return false, sh.pick(arg)
	case "section":
		if err := sh.sess.SetSection(arg); err != nil {
			return false, err
		}
		p := sh.sess.Pending()
		if sh.sess.CanAdd() {
			fmt.Fprintf(sh.out, "section %s of %s, run add\n", p.Section, p.Course)
		} else {
			fmt.Fprintf(sh.out, "section %s of %s, confirm a student ID, then add\n", p.Section, p.Course)
		}
	case "add":
		sel, err := sh.sess.Add()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "added %s section %s: room %s\n", sel.DisplayName(), sel.Section, sel.AssignedRoom)
	case "list":
		sh.list()
	case "remove":
		return false, sh.remove(arg)
	case "clear":
		if strings.EqualFold(arg, "all") {
			sh.sess.Clear()
			sh.suggestions = nil
			fmt.Fprintln(sh.out, "session cleared")
		} else {
			sh.sess.ClearSelected()
			fmt.Fprintln(sh.out, "selections cleared")
		}
	case "import":
		return false, sh.importRoutine(arg)
	case "export":
		return false, sh.export(arg)
	case "state":
		return false, output.Write(sh.out, output.CurrentFormat(), sh.sess.State())
	default:
		return false, fmt.Errorf("unknown command %q, type help", name)
	}
	return false, nil
}

func (sh *shell) load(path string) error {
	if path == "" {
		return errors.New("usage: load <schedule.xlsx>")
	}
	n, err := sh.sess.IngestFile(path)
	if err != nil {
		return err
	}
	sh.suggestions = nil
	fmt.Fprintf(sh.out, "loaded %d exams\n", n)
	return nil
}

func (sh *shell) sort(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return errors.New("usage: sort <course|date|time|room> [asc|desc]")
	}
	key, err := schedule.ParseSortKey(fields[0])
	if err != nil {
		return err
	}
	order := schedule.Ascending
	if len(fields) > 1 {
		if order, err = schedule.ParseSortOrder(fields[1]); err != nil {
			return err
		}
	}
	sh.sess.SetSort(key, order)
	fmt.Fprintf(sh.out, "sorted by %s %s\n", key, order)
	return nil
}

func (sh *shell) search(query string) {
	res := sh.sess.Search(query)
	sh.suggestions = res.Suggestions
	if len(res.Suggestions) == 0 {
		fmt.Fprintln(sh.out, "no matching courses")
		return
	}
	for i, r := range res.Suggestions {
		fmt.Fprintf(sh.out, "%d. %s\n", i+1, r.DisplayName())
	}
	if res.Total > len(res.Suggestions) {
		fmt.Fprintf(sh.out, "(%d more)\n", res.Total-len(res.Suggestions))
	}
	if res.Exact != nil {
		sh.printSections(res.Exact.Course)
	}
}

func (sh *shell) pick(arg string) error {
	if arg == "" {
		return errors.New("usage: pick <n|course>")
	}
	course := arg
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(sh.suggestions) {
			return fmt.Errorf("no suggestion %d", n)
		}
		course = sh.suggestions[n-1].Course
	}
	if err := sh.sess.SelectCourse(course); err != nil {
		return err
	}
	sh.printSections(sh.sess.Pending().Course)
	return nil
}

func (sh *shell) printSections(course string) {
	sections := sh.sess.Sections(course)
	if len(sections) == 0 {
		fmt.Fprintf(sh.out, "picked %s, every section is already selected\n", course)
		return
	}
	fmt.Fprintf(sh.out, "picked %s, sections: %s\n", course, strings.Join(sections, ", "))
}

func (sh *shell) list() {
	sels := sh.sess.Selections()
	if len(sels) == 0 {
		fmt.Fprintln(sh.out, "no courses selected")
		return
	}
	for i, sel := range sels {
		fmt.Fprintf(sh.out, "%d. %s [%s] %s %s room %s\n",
			i+1, sel.DisplayName(), sel.Section, schedule.FormatDate(sel.Date), sel.Time, sel.AssignedRoom)
	}
}

func (sh *shell) remove(arg string) error {
	if arg == "" {
		return errors.New("usage: remove <n|id>")
	}
	var err error
	if n, convErr := strconv.Atoi(arg); convErr == nil {
		err = sh.sess.RemoveAt(n - 1)
	} else {
		err = sh.sess.Remove(arg)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "removed")
	return nil
}

func (sh *shell) importRoutine(path string) error {
	if path == "" {
		return errors.New("usage: import <routine.pdf>")
	}
	cfg := sh.config()
	text, err := routine.ReadPDF(sh.ctx, path, cfg.TextOptions(sh.logger))
	if err != nil {
		return err
	}

	report, err := sh.sess.ImportRoutine(text, cfg.ExtractOptions(sh.logger))
	if errors.Is(err, session.ErrNoneMatched) {
		fmt.Fprintf(sh.out, "found %d courses but none are in the schedule, which has e.g. %s\n",
			len(report.Extracted), strings.Join(report.ScheduleSample, ", "))
	}
	if err != nil {
		return err
	}

	if report.AutoConfirmed {
		fmt.Fprintf(sh.out, "student ID %s confirmed from the routine\n", report.StudentID)
	}
	fmt.Fprintf(sh.out, "added %d courses", len(report.Matched))
	if len(report.Skipped) > 0 {
		fmt.Fprintf(sh.out, ", %d already selected", len(report.Skipped))
	}
	if len(report.Unmatched) > 0 {
		codes := make([]string, len(report.Unmatched))
		for i, c := range report.Unmatched {
			codes[i] = c.String()
		}
		fmt.Fprintf(sh.out, ", not in schedule: %s", strings.Join(codes, ", "))
	}
	fmt.Fprintln(sh.out)
	return nil
}

func (sh *shell) export(dir string) error {
	sched, err := export.New(sh.sess.State(), sh.now())
	if err != nil {
		return err
	}
	cfg := sh.config()
	if dir == "" {
		dir = cfg.ExportDir(sh.exports)
	}
	path, err := sched.Write(dir, cfg.ExportOptions())
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "wrote %s\n", path)
	return nil
}
