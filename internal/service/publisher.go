package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/octobees/leadstorm/internal/entity"
)

// SheetURLPrefix is the sharable location of a spreadsheet, minus its id.
const SheetURLPrefix = "https://docs.google.com/spreadsheets/d/"

var (
	leadHeader        = []string{"username", "name", "post", "source", "score", "email", "why_fit", "phone"}
	placeholderHeader = []string{"name", "email", "why_fit"}
	placeholderRow    = []string{"No leads found", entity.EmailNotFound, "Try a different audience"}
)

// Publisher writes the final leads into a new, openly shared spreadsheet.
type Publisher struct {
	store SheetStore
	now   func() time.Time
	log   zerolog.Logger
}

// NewPublisher builds a publisher backed by store.
func NewPublisher(store SheetStore, log zerolog.Logger) *Publisher {
	return &Publisher{store: store, now: time.Now, log: log}
}

// Publish creates the spreadsheet and returns its URL. Errors are returned
// to the caller because without a sheet the run has no output.
func (p *Publisher) Publish(ctx context.Context, leads []entity.Lead, progress ProgressFunc) (string, error) {
	title := fmt.Sprintf("LeadStorm_%d", p.now().Unix())
	p.log.Info().Str("title", title).Int("leads", len(leads)).Msg("uploading leads")

	id, err := p.store.Create(ctx, title)
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %w", err)
	}
	if err := p.store.ShareWithAnyone(ctx, id); err != nil {
		return "", fmt.Errorf("share spreadsheet %s: %w", id, err)
	}
	if err := p.store.WriteRows(ctx, id, BuildRows(leads)); err != nil {
		return "", fmt.Errorf("write rows to %s: %w", id, err)
	}

	progress.report(100)
	p.log.Info().Str("title", title).Msg("leads uploaded")
	return SheetURLPrefix + id, nil
}

// BuildRows renders leads as spreadsheet rows, header first. An empty list
// renders a single placeholder row.
func BuildRows(leads []entity.Lead) [][]string {
	if len(leads) == 0 {
		return [][]string{placeholderHeader, placeholderRow}
	}

	rows := make([][]string, 0, len(leads)+1)
	rows = append(rows, leadHeader)
	for _, lead := range leads {
		email := lead.Email
		if email == "" {
			email = entity.EmailNotFound
		}
		rows = append(rows, []string{
			lead.Username,
			lead.Name,
			lead.Post,
			lead.Source,
			strconv.Itoa(lead.Score),
			email,
			lead.WhyFit,
			lead.Phone,
		})
	}
	return rows
}
