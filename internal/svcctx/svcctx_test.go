package svcctx

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jackzampolin/roomfinder/internal/home"
)

func TestServicesFrom(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		ctx := context.Background()
		if ServicesFrom(ctx) != nil {
			t.Error("expected nil services")
		}
		if LoggerFrom(ctx) != slog.Default() {
			t.Error("expected default logger")
		}
		if HomeFrom(ctx) != nil {
			t.Error("expected nil home")
		}
		if ConfigFrom(ctx).Search.Limit != 5 {
			t.Error("expected default config")
		}
	})

	t.Run("attached services", func(t *testing.T) {
		h, _ := home.New(t.TempDir())
		logger := slog.New(slog.DiscardHandler)
		ctx := WithServices(context.Background(), &Services{Logger: logger, Home: h})

		if LoggerFrom(ctx) != logger {
			t.Error("expected attached logger")
		}
		if HomeFrom(ctx) != h {
			t.Error("expected attached home")
		}
	})
}
