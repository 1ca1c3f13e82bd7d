package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jackzampolin/roomfinder/internal/schedule"
)

//go:embed layout.schema.json
var layoutSchema []byte

var (
	compileOnce    sync.Once
	compiledLayout *jsonschema.Schema
	compileErr     error
)

// Defaults for Options.
const (
	DefaultPaper       = "A4P"
	DefaultTitle       = "Exam Schedule"
	DefaultFooter      = "Good luck with your exams!"
	DefaultRowsPerPage = 25
)

// Options controls how the schedule is laid out.
type Options struct {
	Paper       string
	Title       string
	Footer      string
	RowsPerPage int
}

func (o Options) withDefaults() Options {
	if o.Paper == "" {
		o.Paper = DefaultPaper
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Footer == "" {
		o.Footer = DefaultFooter
	}
	if o.RowsPerPage <= 0 {
		o.RowsPerPage = DefaultRowsPerPage
	}
	return o
}

// paperSizes holds width and height in points.
var paperSizes = map[string][2]float64{
	"A4P":     {595, 842},
	"A4L":     {842, 595},
	"LetterP": {612, 792},
	"LetterL": {792, 612},
}

const (
	margin     = 40.0
	lineHeight = 20.0
	courseMax  = 48
)

// headerDepth is the distance from the top edge to the first table row.
const headerDepth = margin + 10 + 24 + 16 + 28 + lineHeight

// columns are the table columns as fractions of the usable width.
var columns = []struct {
	label string
	at    float64
}{
	{"Course Name", 0},
	{"Section", 0.48},
	{"Date", 0.59},
	{"Time", 0.74},
	{"Room", 0.87},
}

type layoutDoc struct {
	Paper string                `json:"paper"`
	Pages map[string]layoutPage `json:"pages"`
}

type layoutPage struct {
	Content layoutContent `json:"content"`
}

type layoutContent struct {
	Text []layoutText `json:"text"`
}

type layoutText struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  layoutFont `json:"font"`
}

type layoutFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// rowsPerPage caps opts.RowsPerPage to what fits above the footer.
func rowsPerPage(opts Options) int {
	size, ok := paperSizes[opts.Paper]
	if !ok {
		return opts.RowsPerPage
	}
	fit := int((size[1]-headerDepth-margin-lineHeight)/lineHeight) + 1
	return max(1, min(opts.RowsPerPage, fit))
}

// PageCount returns how many pages the schedule renders to.
func (s *Schedule) PageCount(opts Options) int {
	rows := rowsPerPage(opts.withDefaults())
	return max(1, (len(s.Entries)+rows-1)/rows)
}

// Layout returns the pdfcpu page description of the schedule. The result is
// validated against the embedded layout schema.
func (s *Schedule) Layout(opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	size, ok := paperSizes[opts.Paper]
	if !ok {
		return nil, fmt.Errorf("unsupported paper size %q", opts.Paper)
	}
	width, height := size[0], size[1]
	usable := width - 2*margin
	rows := rowsPerPage(opts)

	doc := layoutDoc{Paper: opts.Paper, Pages: make(map[string]layoutPage)}
	pages := s.PageCount(opts)
	for p := range pages {
		var texts []layoutText
		add := func(value string, x, y float64, bold bool, pt int) {
			if value == "" {
				return
			}
			name := "Helvetica"
			if bold {
				name = "Helvetica-Bold"
			}
			texts = append(texts, layoutText{Value: value, Pos: [2]float64{x, y}, Font: layoutFont{Name: name, Size: pt}})
		}

		y := height - margin - 10
		add(opts.Title, margin, y, true, 18)
		y -= 24
		add("Student ID: "+s.StudentID, margin, y, false, 11)
		y -= 16
		add("Generated on: "+s.Generated.Format(schedule.DisplayDateLayout), margin, y, false, 11)
		y -= 28

		for _, c := range columns {
			add(c.label, margin+c.at*usable, y, true, 10)
		}
		y -= lineHeight

		start := p * rows
		end := min(start+rows, len(s.Entries))
		for _, e := range s.Entries[start:end] {
			cells := []string{truncate(e.Course, courseMax), e.Section, e.Date, e.Time, e.Room}
			for i, c := range columns {
				add(cells[i], margin+c.at*usable, y, false, 9)
			}
			y -= lineHeight
		}

		add(opts.Footer, margin, margin, false, 9)
		add(fmt.Sprintf("Page %d of %d", p+1, pages), width-margin-60, margin, false, 9)

		doc.Pages[strconv.Itoa(p+1)] = layoutPage{Content: layoutContent{Text: texts}}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode layout: %w", err)
	}
	if err := validateLayout(data); err != nil {
		return nil, err
	}
	return data, nil
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}

func validateLayout(data []byte) error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("layout.json", bytes.NewReader(layoutSchema)); err != nil {
			compileErr = fmt.Errorf("failed to load layout schema: %w", err)
			return
		}
		compiledLayout, compileErr = compiler.Compile("layout.json")
	})
	if compileErr != nil {
		return fmt.Errorf("failed to compile layout schema: %w", compileErr)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode layout for validation: %w", err)
	}
	if err := compiledLayout.Validate(doc); err != nil {
		return fmt.Errorf("layout does not match schema: %w", err)
	}
	return nil
}
