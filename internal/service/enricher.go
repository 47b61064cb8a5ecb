package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/octobees/leadstorm/internal/entity"
)

const whyFitExcerpt = 50

// Enricher attaches best-effort contact details to qualified leads.
type Enricher struct {
	finder EmailFinder
	pacer  Pacer
	region string
	log    zerolog.Logger
}

// NewEnricher builds an enricher. region is the default phone region used
// when parsing numbers found in post text.
func NewEnricher(finder EmailFinder, pacer Pacer, region string, log zerolog.Logger) *Enricher {
	if pacer == nil {
		pacer = NoPacer{}
	}
	return &Enricher{finder: finder, pacer: pacer, region: region, log: log}
}

// Enrich annotates every lead and never drops one. If the stage itself
// breaks down the input is returned as is.
func (e *Enricher) Enrich(ctx context.Context, leads []entity.Lead, progress ProgressFunc) (out []entity.Lead) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("enrichment failed")
			out = leads
		}
	}()

	e.log.Info().Int("leads", len(leads)).Msg("enriching leads")
	enriched := make([]entity.Lead, len(leads))
	copy(enriched, leads)

	step := 25 / float64(max(1, len(enriched)))
	current := 50.0
	lookups := e.finder != nil

	for i := range enriched {
		lead := &enriched[i]
		if lookups {
			if err := e.pacer.Wait(ctx); err != nil {
				e.log.Warn().Err(err).Msg("email lookups interrupted")
				lookups = false
			}
		}

		lead.Email = entity.EmailNotFound
		if lookups {
			if email := e.lookup(ctx, lead.Name); email != "" {
				lead.Email = email
			}
		}
		lead.WhyFit = whyFit(lead.Post)
		lead.Phone = ExtractPhone(lead.Post, e.region)

		current += step
		progress.report(min(current, 75))
	}

	progress.report(75)
	e.log.Info().Int("leads", len(enriched)).Msg("enrichment finished")
	return enriched
}

func (e *Enricher) lookup(ctx context.Context, name string) string {
	raw, err := e.finder.FindEmail(ctx, name)
	if err != nil {
		e.log.Warn().Err(err).Str("name", name).Msg("email lookup failed")
		return ""
	}
	email := NormalizeEmail(raw)
	if raw != "" && email == "" {
		e.log.Warn().Str("name", name).Str("email", raw).Msg("discarding malformed email")
	}
	return email
}

func whyFit(post string) string {
	runes := []rune(post)
	if len(runes) > whyFitExcerpt {
		runes = runes[:whyFitExcerpt]
	}
	return fmt.Sprintf("Post: %s...", string(runes))
}
