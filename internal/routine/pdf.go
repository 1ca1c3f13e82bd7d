package routine

import (
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDF is an open routine document. It implements Source.
type PDF struct {
	file   *os.File
	reader *pdf.Reader
	pages  int
}

// OpenPDF validates path with pdfcpu and opens its text layer.
func OpenPDF(path string) (doc *PDF, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open routine: %w", err)
	}
	pages, err := api.PageCount(f, nil)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read routine %s: %w", path, err)
	}

	// The text layer parser panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse routine %s: %v", path, r)
		}
	}()

	tf, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse routine %s: %w", path, err)
	}
	if n := r.NumPage(); n < pages {
		pages = n
	}
	return &PDF{file: tf, reader: r, pages: pages}, nil
}

// NumPages returns the number of pages.
func (d *PDF) NumPages() int {
	return d.pages
}

// PageFragments returns the text runs of page n row by row, top to bottom.
// Pages without content yield no fragments.
func (d *PDF) PageFragments(n int) (frags []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", n, r)
		}
	}()

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return nil, nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		for _, t := range row.Content {
			frags = append(frags, t.S)
		}
	}
	return frags, nil
}

// Close releases the underlying file.
func (d *PDF) Close() error {
	return d.file.Close()
}

// ReadPDF opens path and extracts its text.
func ReadPDF(ctx context.Context, path string, opts TextOptions) (*Text, error) {
	doc, err := OpenPDF(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return ExtractText(ctx, doc, opts)
}
