package routine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/text/unicode/norm"
)

// DefaultPageRetries is how many times a page read is attempted.
const DefaultPageRetries = 3

// Source is a paged document with a text layer. Pages are numbered from 1.
type Source interface {
	NumPages() int
	PageFragments(n int) ([]string, error)
}

// TextOptions configures ExtractText.
type TextOptions struct {
	// Retries is the number of attempts per page (0 means DefaultPageRetries).
	Retries uint
	// RetryDelay is the wait between attempts (0 means 200ms).
	RetryDelay time.Duration
	Logger     *slog.Logger
}

// ExtractText reads every page of src in order. Fragments are NFKC
// normalized and trimmed; blank ones are dropped. A page that keeps failing
// after all retries fails the whole extraction.
func ExtractText(ctx context.Context, src Source, opts TextOptions) (*Text, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	attempts := opts.Retries
	if attempts == 0 {
		attempts = DefaultPageRetries
	}
	delay := opts.RetryDelay
	if delay == 0 {
		delay = 200 * time.Millisecond
	}

	out := &Text{Pages: src.NumPages()}
	var flat strings.Builder

	for n := 1; n <= out.Pages; n++ {
		var raw []string
		err := retry.Do(
			func() error {
				var err error
				raw, err = src.PageFragments(n)
				return err
			},
			retry.Context(ctx),
			retry.Attempts(attempts),
			retry.Delay(delay),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(attempt uint, err error) {
				log.Debug("retrying page read", "page", n, "attempt", attempt+1, "error", err)
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", n, err)
		}

		page := make([]string, 0, len(raw))
		for _, s := range raw {
			s = strings.TrimSpace(norm.NFKC.String(s))
			if s == "" {
				continue
			}
			page = append(page, s)
		}
		out.Fragments = append(out.Fragments, page...)
		flat.WriteString(strings.Join(page, " "))
		flat.WriteByte('\n')

		log.Debug("read page", "page", n, "fragments", len(page))
	}

	out.Flat = flat.String()
	return out, nil
}
