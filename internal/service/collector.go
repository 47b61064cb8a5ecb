package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/octobees/leadstorm/internal/entity"
	"github.com/octobees/leadstorm/internal/logger"
)

// Collector gathers raw leads from public posts mentioning the audience.
type Collector struct {
	source PostSource
	pages  int
	limit  int
	log    zerolog.Logger
}

// NewCollector reads at most pages pages and keeps up to twice leadsPerRun raw leads.
func NewCollector(source PostSource, pages, leadsPerRun int, log zerolog.Logger) *Collector {
	if pages <= 0 {
		pages = 1
	}
	if leadsPerRun <= 0 {
		leadsPerRun = 1
	}
	return &Collector{source: source, pages: pages, limit: 2 * leadsPerRun, log: log}
}

// Collect returns posts whose text contains audience, case-insensitively.
// Retrieval failures are reported as an empty result.
func (c *Collector) Collect(ctx context.Context, audience string, progress ProgressFunc) []entity.Lead {
	c.log.Info().Str("audience", audience).Msg("collecting public posts")
	progress.report(10)

	needle := strings.ToLower(audience)
	leads := make([]entity.Lead, 0, c.limit)
	cursor := ""

pages:
	for page := 0; page < c.pages; page++ {
		result, err := c.source.FetchPage(ctx, cursor)
		if err != nil {
			c.log.Error().Err(err).Int("page", page).Msg("post scrape failed")
			return nil
		}

		for _, post := range result.Posts {
			text := post.Text
			if text != "" && strings.Contains(strings.ToLower(text), needle) {
				leads = append(leads, newLead(post))
				c.log.Info().Str("post", logger.Excerpt(text, 50)).Msg("found lead")
			}
			if len(leads) >= c.limit {
				break pages
			}
		}

		if result.Next == "" {
			break
		}
		cursor = result.Next
	}

	progress.report(25)
	c.log.Info().Int("raw_leads", len(leads)).Msg("collection finished")
	return leads
}

func newLead(post entity.Post) entity.Lead {
	lead := entity.Lead{
		Username: strings.TrimSpace(post.Username),
		Name:     strings.TrimSpace(post.Name),
		Post:     post.Text,
		Source:   entity.SourceFacebook,
	}
	if lead.Username == "" {
		lead.Username = entity.UnknownUsername
	}
	if lead.Name == "" {
		lead.Name = entity.UnknownName
	}
	return lead
}
