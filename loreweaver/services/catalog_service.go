package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/loreweaver-bot/loreweaver/loreweaver/database/repositories"
	"github.com/sahilm/fuzzy"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	warmQueryTimeout  = 30 * time.Second
	parallelGuildLoad = 4
)

// questSearchItems implements fuzzy.Source over quest titles.
type questSearchItems []*models.Quest

func (items questSearchItems) Len() int {
	return len(items)
}

func (items questSearchItems) String(i int) string {
	return items[i].Title
}

// CatalogService serves the quest content catalog to out-of-engine
// collaborators: cache warm-up at startup and title lookup for the content
// pipeline and acceptance flows.
type CatalogService struct {
	db     *bun.DB
	quests repositories.QuestRepository
}

func NewCatalogService(db *bun.DB, quests repositories.QuestRepository) *CatalogService {
	return &CatalogService{
		db:     db,
		quests: quests,
	}
}

// WarmCache preloads quest definitions for the given guilds into the
// repository cache, a few guilds at a time.
func (s *CatalogService) WarmCache(ctx context.Context, guildIDs []string) error {
	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(parallelGuildLoad)

	for _, guildID := range guildIDs {
		guildID := guildID
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			queryCtx, cancel := context.WithTimeout(gctx, warmQueryTimeout)
			defer cancel()

			quests, err := s.quests.AllForGuild(queryCtx, s.db, guildID)
			if err != nil {
				return err
			}
			slog.Debug("Warmed quest catalog",
				slog.String("guild_id", guildID),
				slog.Int("quests", len(quests)))
			return nil
		})
	}

	return g.Wait()
}

// Search returns the guild's quests whose titles fuzzy-match the query, best
// match first. An empty query returns the full catalog.
func (s *CatalogService) Search(ctx context.Context, guildID, query string) ([]*models.Quest, error) {
	quests, err := s.quests.AllForGuild(ctx, s.db, guildID)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return quests, nil
	}

	matches := fuzzy.FindFrom(query, questSearchItems(quests))
	results := make([]*models.Quest, 0, len(matches))
	for _, m := range matches {
		results = append(results, quests[m.Index])
	}
	return results, nil
}
