package main

import (
	"context"

	"github.com/jackzampolin/roomfinder/internal/routine"
	"github.com/jackzampolin/roomfinder/internal/session"
	"github.com/jackzampolin/roomfinder/internal/svcctx"
)

// loadSession starts a session on the schedule at path.
func loadSession(ctx context.Context, path string) (*session.Session, error) {
	cfg := svcctx.ConfigFrom(ctx)
	sess := session.New(session.Options{
		SearchLimit: cfg.Search.Limit,
		Logger:      svcctx.LoggerFrom(ctx),
	})
	if _, err := sess.IngestFile(path); err != nil {
		return nil, err
	}
	return sess, nil
}

// readRoutine extracts the text of the routine PDF at path.
func readRoutine(ctx context.Context, path string) (*routine.Text, error) {
	cfg := svcctx.ConfigFrom(ctx)
	return routine.ReadPDF(ctx, path, cfg.TextOptions(svcctx.LoggerFrom(ctx)))
}
