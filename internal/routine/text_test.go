package routine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pages    [][]string
	failures map[int]int
	calls    map[int]int
}

func (f *fakeSource) NumPages() int { return len(f.pages) }

func (f *fakeSource) PageFragments(n int) ([]string, error) {
	if f.calls == nil {
		f.calls = make(map[int]int)
	}
	f.calls[n]++
	if f.calls[n] <= f.failures[n] {
		return nil, errors.New("transient read error")
	}
	return f.pages[n-1], nil
}

func TestExtractText(t *testing.T) {
	src := &fakeSource{
		pages: [][]string{
			{"ＣＳＥ２５１", " ", "Sec A", ""},
			{"MAT101", "Section B"},
		},
		failures: map[int]int{1: 2},
	}

	text, err := ExtractText(context.Background(), src, TextOptions{RetryDelay: time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, 2, text.Pages)
	assert.Equal(t, []string{"CSE251", "Sec A", "MAT101", "Section B"}, text.Fragments)
	assert.Equal(t, "CSE251 Sec A\nMAT101 Section B\n", text.Flat)
	assert.Equal(t, 3, src.calls[1])

	assert.Equal(t, []Course{{"CSE251", "A"}, {"MAT101", "B"}}, ExtractCourses(text, ExtractOptions{}))
}

func TestExtractText_BlankFragmentsOutsideWindow(t *testing.T) {
	page := []string{"CSE251", " ", "", "\t", " ", ""}
	for range 8 {
		page = append(page, "filler")
	}
	page = append(page, "Sec A")

	text, err := ExtractText(context.Background(), &fakeSource{pages: [][]string{page}}, TextOptions{})
	require.NoError(t, err)
	require.Len(t, text.Fragments, 10)

	assert.Equal(t, []Course{{"CSE251", "A"}}, ExtractCourses(text, ExtractOptions{}))
}

func TestExtractText_PageKeepsFailing(t *testing.T) {
	src := &fakeSource{
		pages:    [][]string{{"CSE251"}},
		failures: map[int]int{1: 10},
	}

	_, err := ExtractText(context.Background(), src, TextOptions{Retries: 2, RetryDelay: time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 1")
	assert.Equal(t, 2, src.calls[1])
}

func TestExtractText_NoPages(t *testing.T) {
	text, err := ExtractText(context.Background(), &fakeSource{}, TextOptions{})
	require.NoError(t, err)
	assert.True(t, text.Empty())
	assert.Empty(t, ExtractCourses(text, ExtractOptions{}))
}

func TestOpenPDF_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenPDF(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)

	bogus := filepath.Join(dir, "routine.pdf")
	require.NoError(t, os.WriteFile(bogus, []byte("not a pdf"), 0o644))
	_, err = OpenPDF(bogus)
	assert.Error(t, err)
}
