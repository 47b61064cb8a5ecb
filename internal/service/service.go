package service

import (
	"context"

	"github.com/octobees/leadstorm/internal/entity"
)

// PostSource pages through public social posts.
type PostSource interface {
	FetchPage(ctx context.Context, cursor string) (entity.PostPage, error)
}

// Scorer sends a single-turn prompt to a language model and returns its reply.
type Scorer interface {
	Score(ctx context.Context, prompt string) (string, error)
}

// EmailFinder looks up the most likely email address for a full name.
// An empty result means the lookup found nothing.
type EmailFinder interface {
	FindEmail(ctx context.Context, fullName string) (string, error)
}

// SheetStore creates and fills shared spreadsheets.
type SheetStore interface {
	Create(ctx context.Context, title string) (string, error)
	ShareWithAnyone(ctx context.Context, spreadsheetID string) error
	WriteRows(ctx context.Context, spreadsheetID string, rows [][]string) error
}

// ProgressFunc receives the overall run progress in percent.
type ProgressFunc func(percent float64)

func (f ProgressFunc) report(percent float64) {
	if f != nil {
		f(percent)
	}
}
