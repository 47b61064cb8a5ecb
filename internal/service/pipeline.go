package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/octobees/leadstorm/internal/entity"
)

// ErrAudienceRequired is returned when a run is started without an audience.
var ErrAudienceRequired = errors.New("audience is required")

// State is a step of the run state machine.
type State string

const (
	StateIdle          State = "idle"
	StateCollecting    State = "collecting"
	StateQualifying    State = "qualifying"
	StateEnriching     State = "enriching"
	StatePublishing    State = "publishing"
	StateDone          State = "done"
	StateNoLeadsFound  State = "no_leads_found"
	StateNoneQualified State = "none_qualified"
	StateFailed        State = "failed"
)

// Terminal reports whether the run ends in this state.
func (s State) Terminal() bool {
	switch s {
	case StateDone, StateNoLeadsFound, StateNoneQualified, StateFailed:
		return true
	default:
		return false
	}
}

// Observer is notified of state transitions and progress while a run executes.
type Observer interface {
	OnState(state State)
	OnProgress(percent float64)
}

// Outcome is the result of a pipeline run.
type Outcome struct {
	State    State
	Leads    []entity.Lead
	SheetURL string
}

// Pipeline runs the collect, qualify, enrich and publish stages in order.
type Pipeline struct {
	collector *Collector
	qualifier *Qualifier
	enricher  *Enricher
	publisher *Publisher
	log       zerolog.Logger
}

// NewPipeline wires the four stages.
func NewPipeline(collector *Collector, qualifier *Qualifier, enricher *Enricher, publisher *Publisher, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		collector: collector,
		qualifier: qualifier,
		enricher:  enricher,
		publisher: publisher,
		log:       log,
	}
}

// Run executes one pass of the pipeline for audience. Only a publish failure
// is returned as an error; the other stages degrade instead.
func (p *Pipeline) Run(ctx context.Context, audience string, obs Observer) (Outcome, error) {
	audience = strings.TrimSpace(audience)
	if audience == "" {
		return Outcome{State: StateIdle}, ErrAudienceRequired
	}
	if obs == nil {
		obs = nopObserver{}
	}
	progress := ProgressFunc(obs.OnProgress)
	p.log.Info().Str("audience", audience).Msg("starting run")

	obs.OnState(StateCollecting)
	raw := p.collector.Collect(ctx, audience, progress)
	if len(raw) == 0 {
		obs.OnState(StateNoLeadsFound)
		return Outcome{State: StateNoLeadsFound}, nil
	}

	obs.OnState(StateQualifying)
	qualified := p.qualifier.Qualify(ctx, raw, progress)
	if len(qualified) == 0 {
		obs.OnState(StateNoneQualified)
		return Outcome{State: StateNoneQualified}, nil
	}

	obs.OnState(StateEnriching)
	enriched := p.enricher.Enrich(ctx, qualified, progress)

	obs.OnState(StatePublishing)
	url, err := p.publisher.Publish(ctx, enriched, progress)
	if err != nil {
		p.log.Error().Err(err).Msg("google sheets upload failed")
		obs.OnState(StateFailed)
		return Outcome{State: StateFailed, Leads: enriched}, fmt.Errorf("publish leads: %w", err)
	}

	obs.OnState(StateDone)
	return Outcome{State: StateDone, Leads: enriched, SheetURL: url}, nil
}

type nopObserver struct{}

func (nopObserver) OnState(State)      {}
func (nopObserver) OnProgress(float64) {}
