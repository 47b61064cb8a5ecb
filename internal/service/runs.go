package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/octobees/leadstorm/internal/dto"
)

// ErrRunInProgress is returned when a run is requested while another is active.
var ErrRunInProgress = errors.New("a run is already in progress")

// Dialog kinds understood by the form.
const (
	DialogInfo    = dto.DialogInfo
	DialogWarning = dto.DialogWarning
	DialogError   = dto.DialogError
)

// User facing messages.
const (
	MsgAudienceRequired = "Enter an audience first!"
	MsgNoLeadsFound     = "No leads found on public FB. Try a different audience."
	MsgNoneQualified    = "No leads scored high enough. Try a broader audience."
	MsgPublishFailed    = "Google Sheets upload failed. Check your setup and try again."
	MsgCrashed          = "Something went wrong. Check your setup and try again."
)

// Runner executes a single pipeline pass.
type Runner interface {
	Run(ctx context.Context, audience string, obs Observer) (Outcome, error)
}

// BrowserOpener opens a URL in the user's default browser.
type BrowserOpener func(url string) error

// RunManager starts runs one at a time and tracks their progress for the form.
type RunManager struct {
	ctx    context.Context
	runner Runner
	open   BrowserOpener
	log    zerolog.Logger

	mu      sync.Mutex
	current *run
}

type run struct {
	id       string
	audience string
	state    State
	progress float64
	leads    int
	url      string
	dialog   *dto.Dialog
	done     chan struct{}
}

// NewRunManager builds a manager whose runs live as long as ctx.
func NewRunManager(ctx context.Context, runner Runner, open BrowserOpener, log zerolog.Logger) *RunManager {
	return &RunManager{ctx: ctx, runner: runner, open: open, log: log}
}

// Start launches a run for audience in the background.
func (m *RunManager) Start(audience string) (dto.RunStatus, error) {
	audience = strings.TrimSpace(audience)
	if audience == "" {
		return dto.RunStatus{}, ErrAudienceRequired
	}

	m.mu.Lock()
	if m.current != nil && !m.current.state.Terminal() {
		m.mu.Unlock()
		return dto.RunStatus{}, ErrRunInProgress
	}
	r := &run{
		id:       uuid.NewString(),
		audience: audience,
		state:    StateIdle,
		done:     make(chan struct{}),
	}
	m.current = r
	status := m.snapshotLocked()
	m.mu.Unlock()

	go m.execute(r)
	return status, nil
}

// Current returns the status of the latest run.
func (m *RunManager) Current() dto.RunStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Wait blocks until the latest run has finished or ctx is done.
func (m *RunManager) Wait(ctx context.Context) error {
	m.mu.Lock()
	r := m.current
	m.mu.Unlock()
	if r == nil {
		return nil
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *RunManager) execute(r *run) {
	log := m.log.With().Str("run_id", r.id).Logger()
	defer close(r.done)
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("run crashed")
			m.finish(r, StateFailed, 0, "", &dto.Dialog{Kind: DialogError, Message: MsgCrashed})
		}
	}()

	outcome, err := m.runner.Run(m.ctx, r.audience, runObserver{m: m, r: r})
	switch {
	case err != nil:
		log.Error().Err(err).Msg("run failed")
		m.finish(r, StateFailed, 0, "", &dto.Dialog{Kind: DialogError, Message: MsgPublishFailed})
	case outcome.State == StateNoLeadsFound:
		m.finish(r, outcome.State, 0, "", &dto.Dialog{Kind: DialogWarning, Message: MsgNoLeadsFound})
	case outcome.State == StateNoneQualified:
		m.finish(r, outcome.State, 0, "", &dto.Dialog{Kind: DialogWarning, Message: MsgNoneQualified})
	default:
		count := len(outcome.Leads)
		m.finish(r, StateDone, count, outcome.SheetURL, &dto.Dialog{
			Kind:    DialogInfo,
			Message: fmt.Sprintf("Done! Found %d leads: %s", count, outcome.SheetURL),
		})
		log.Info().Int("leads", count).Str("url", outcome.SheetURL).Msg("run finished")
		if m.open != nil {
			if err := m.open(outcome.SheetURL); err != nil {
				log.Warn().Err(err).Msg("could not open browser")
			}
		}
	}
}

func (m *RunManager) finish(r *run, state State, leads int, url string, dialog *dto.Dialog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.state = state
	r.leads = leads
	r.url = url
	r.dialog = dialog
}

func (m *RunManager) snapshotLocked() dto.RunStatus {
	r := m.current
	if r == nil {
		return dto.RunStatus{State: string(StateIdle)}
	}
	status := dto.RunStatus{
		RunID:     r.id,
		Audience:  r.audience,
		State:     string(r.state),
		Progress:  r.progress,
		Active:    !r.state.Terminal(),
		LeadCount: r.leads,
		SheetURL:  r.url,
	}
	if r.dialog != nil {
		d := *r.dialog
		status.Dialog = &d
	}
	return status
}

type runObserver struct {
	m *RunManager
	r *run
}

// OnState ignores terminal states; execute records them with their dialog.
func (o runObserver) OnState(state State) {
	if state.Terminal() {
		return
	}
	o.m.mu.Lock()
	o.r.state = state
	o.m.mu.Unlock()
	o.m.log.Info().Str("run_id", o.r.id).Str("state", string(state)).Msg("run state changed")
}

func (o runObserver) OnProgress(percent float64) {
	o.m.mu.Lock()
	if percent > o.r.progress {
		o.r.progress = percent
	}
	o.m.mu.Unlock()
}
