package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/octobees/leadstorm/internal/entity"
	"github.com/octobees/leadstorm/internal/logger"
	"github.com/octobees/leadstorm/internal/service/scoring"
)

// Qualifier scores raw leads with a language model and keeps the good ones.
type Qualifier struct {
	scorer Scorer
	pacer  Pacer
	limit  int
	log    zerolog.Logger
}

// NewQualifier builds a qualifier keeping at most leadsPerRun leads.
// A nil scorer makes every run return no leads.
func NewQualifier(scorer Scorer, pacer Pacer, leadsPerRun int, log zerolog.Logger) *Qualifier {
	if pacer == nil {
		pacer = NoPacer{}
	}
	if leadsPerRun <= 0 {
		leadsPerRun = 1
	}
	return &Qualifier{scorer: scorer, pacer: pacer, limit: leadsPerRun, log: log}
}

// Qualify scores leads in input order and stops once the per-run cap is
// reached. A failed call scores the lead 0 without aborting the batch.
func (q *Qualifier) Qualify(ctx context.Context, leads []entity.Lead, progress ProgressFunc) []entity.Lead {
	if q.scorer == nil {
		q.log.Error().Msg("lead qualification unavailable: no scoring client")
		return nil
	}
	q.log.Info().Int("candidates", len(leads)).Msg("qualifying leads")

	step := 25 / float64(max(1, len(leads)))
	current := 25.0
	qualified := make([]entity.Lead, 0, min(len(leads), q.limit))

	for i := range leads {
		if err := q.pacer.Wait(ctx); err != nil {
			q.log.Warn().Err(err).Msg("qualification interrupted")
			break
		}

		lead := &leads[i]
		lead.Score = q.score(ctx, lead.Post)
		if scoring.Qualifies(lead.Score) {
			qualified = append(qualified, *lead)
		}

		current += step
		progress.report(min(current, 50))
		if len(qualified) >= q.limit {
			break
		}
	}

	progress.report(50)
	q.log.Info().Int("qualified", len(qualified)).Msg("qualification finished")
	return qualified
}

func (q *Qualifier) score(ctx context.Context, post string) int {
	reply, err := q.scorer.Score(ctx, scoring.Prompt(post))
	if err != nil {
		q.log.Error().Err(err).Str("post", logger.Excerpt(post, 50)).Msg("scoring call failed")
		return 0
	}
	score := scoring.ParseScore(reply)
	q.log.Info().Str("post", logger.Excerpt(post, 50)).Str("reply", reply).Int("score", score).Msg("lead scored")
	return score
}
