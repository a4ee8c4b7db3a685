package threadrecorder

import (
	"context"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.ThreadResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordThread(_ context.Context, _ domain.ThreadResultRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
