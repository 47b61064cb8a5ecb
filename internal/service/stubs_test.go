package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/octobees/leadstorm/internal/entity"
)

var testLogger = zerolog.New(io.Discard)

type stubSource struct {
	pages []entity.PostPage
	err   error
	calls int
}

func (s *stubSource) FetchPage(ctx context.Context, cursor string) (entity.PostPage, error) {
	s.calls++
	if s.err != nil {
		return entity.PostPage{}, s.err
	}
	idx := 0
	if cursor != "" {
		for i := range s.pages {
			if s.pages[i].Next == cursor {
				idx = i + 1
			}
		}
	}
	if idx >= len(s.pages) {
		return entity.PostPage{}, errors.New("no such page")
	}
	return s.pages[idx], nil
}

type stubScorer struct {
	replies map[string]string
	errs    map[string]error
	prompts []string
}

func (s *stubScorer) Score(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	for post, err := range s.errs {
		if prompt == promptFor(post) {
			return "", err
		}
	}
	for post, reply := range s.replies {
		if prompt == promptFor(post) {
			return reply, nil
		}
	}
	return "0", nil
}

type stubFinder struct {
	emails map[string]string
	errs   map[string]error
	names  []string
	panics bool
}

func (s *stubFinder) FindEmail(ctx context.Context, name string) (string, error) {
	if s.panics {
		panic("lookup client exploded")
	}
	s.names = append(s.names, name)
	if err, ok := s.errs[name]; ok {
		return "", err
	}
	return s.emails[name], nil
}

type stubSheets struct {
	id        string
	createErr error
	shareErr  error
	writeErr  error
	title     string
	shared    string
	rows      [][]string
	calls     int
}

func (s *stubSheets) Create(ctx context.Context, title string) (string, error) {
	s.calls++
	s.title = title
	if s.createErr != nil {
		return "", s.createErr
	}
	return s.id, nil
}

func (s *stubSheets) ShareWithAnyone(ctx context.Context, id string) error {
	s.shared = id
	return s.shareErr
}

func (s *stubSheets) WriteRows(ctx context.Context, id string, rows [][]string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.rows = rows
	return nil
}

// countingPacer lets the first okWaits waits through and then returns err.
type countingPacer struct {
	waits   int
	okWaits int
	err     error
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	if p.waits <= p.okWaits {
		return nil
	}
	return p.err
}

type progressRecorder struct {
	mu     sync.Mutex
	values []float64
	states []State
}

func (r *progressRecorder) OnProgress(percent float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, percent)
}

func (r *progressRecorder) OnState(state State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *progressRecorder) last() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return -1
	}
	return r.values[len(r.values)-1]
}

func promptFor(post string) string {
	return "Score this lead (0-10) for fit as a potential customer based on: Post: " + post
}

func leadsWithPosts(posts ...string) []entity.Lead {
	leads := make([]entity.Lead, 0, len(posts))
	for i, post := range posts {
		leads = append(leads, entity.Lead{
			Username: "user" + string(rune('a'+i)),
			Name:     "Name " + string(rune('A'+i)),
			Post:     post,
			Source:   entity.SourceFacebook,
		})
	}
	return leads
}
