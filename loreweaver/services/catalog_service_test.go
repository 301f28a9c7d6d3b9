package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// fakeQuestRepo is safe for the concurrent loads WarmCache issues.
type fakeQuestRepo struct {
	mu     sync.Mutex
	quests map[string][]*models.Quest
	loads  []string
	err    error
}

func (f *fakeQuestRepo) GetByStaticID(_ context.Context, _ bun.IDB, guildID, questID string) (*models.Quest, error) {
	for _, q := range f.quests[guildID] {
		if q.QuestID == questID {
			return q, nil
		}
	}
	return nil, errors.New("quest not found")
}

func (f *fakeQuestRepo) AllForGuild(_ context.Context, _ bun.IDB, guildID string) ([]*models.Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.loads = append(f.loads, guildID)
	return f.quests[guildID], nil
}

func (f *fakeQuestRepo) Create(_ context.Context, _ bun.IDB, quest *models.Quest) error {
	f.quests[quest.GuildID] = append(f.quests[quest.GuildID], quest)
	return nil
}

func catalogFixture() *fakeQuestRepo {
	return &fakeQuestRepo{quests: map[string][]*models.Quest{
		"guild-1": {
			{ID: 1, GuildID: "guild-1", QuestID: "goblin_menace", Title: "The Goblin Menace"},
			{ID: 2, GuildID: "guild-1", QuestID: "dragon_hoard", Title: "The Dragon's Hoard"},
			{ID: 3, GuildID: "guild-1", QuestID: "lost_caravan", Title: "The Lost Caravan"},
		},
	}}
}

func TestCatalogSearch(t *testing.T) {
	repo := catalogFixture()
	svc := NewCatalogService(nil, repo)

	results, err := svc.Search(context.Background(), "guild-1", "dragon")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "dragon_hoard", results[0].QuestID)
}

func TestCatalogSearchRanksBestMatchFirst(t *testing.T) {
	repo := catalogFixture()
	repo.quests["guild-1"] = append(repo.quests["guild-1"],
		&models.Quest{ID: 4, GuildID: "guild-1", QuestID: "gob_king", Title: "Goblin King's Bargain"})
	svc := NewCatalogService(nil, repo)

	results, err := svc.Search(context.Background(), "guild-1", "goblin menace")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "goblin_menace", results[0].QuestID)
}

func TestCatalogSearchEmptyQueryReturnsAll(t *testing.T) {
	repo := catalogFixture()
	svc := NewCatalogService(nil, repo)

	results, err := svc.Search(context.Background(), "guild-1", "   ")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestCatalogSearchNoMatches(t *testing.T) {
	repo := catalogFixture()
	svc := NewCatalogService(nil, repo)

	results, err := svc.Search(context.Background(), "guild-1", "zzzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCatalogSearchPropagatesRepoError(t *testing.T) {
	repo := catalogFixture()
	repo.err = errors.New("db down")
	svc := NewCatalogService(nil, repo)

	_, err := svc.Search(context.Background(), "guild-1", "dragon")
	require.Error(t, err)
}

func TestWarmCacheLoadsEveryGuild(t *testing.T) {
	repo := catalogFixture()
	repo.quests["guild-2"] = []*models.Quest{
		{ID: 9, GuildID: "guild-2", QuestID: "harvest_rites", Title: "Harvest Rites"},
	}
	svc := NewCatalogService(nil, repo)

	err := svc.WarmCache(context.Background(), []string{"guild-1", "guild-2"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"guild-1", "guild-2"}, repo.loads)
}

func TestWarmCachePropagatesLoadError(t *testing.T) {
	repo := catalogFixture()
	repo.err = errors.New("db down")
	svc := NewCatalogService(nil, repo)

	err := svc.WarmCache(context.Background(), []string{"guild-1"})
	require.Error(t, err)
}
