package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

const questCacheSize = 2048

type QuestRepository interface {
	// GetByStaticID loads a quest template with its steps, in order. Quest
	// content is immutable during play, so hits are served from cache.
	GetByStaticID(ctx context.Context, db bun.IDB, guildID, questID string) (*models.Quest, error)
	AllForGuild(ctx context.Context, db bun.IDB, guildID string) ([]*models.Quest, error)
	Create(ctx context.Context, db bun.IDB, quest *models.Quest) error
}

type questRepository struct {
	cache *lru.Cache
}

func NewQuestRepository() QuestRepository {
	cache, _ := lru.New(questCacheSize)
	return &questRepository{cache: cache}
}

func questCacheKey(guildID, questID string) string {
	return guildID + "|" + questID
}

func (r *questRepository) GetByStaticID(ctx context.Context, db bun.IDB, guildID, questID string) (*models.Quest, error) {
	if cached, ok := r.cache.Get(questCacheKey(guildID, questID)); ok {
		return cached.(*models.Quest), nil
	}

	quest := new(models.Quest)
	err := db.NewSelect().
		Model(quest).
		Relation("Steps", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("step_order ASC")
		}).
		Where("q.guild_id = ?", guildID).
		Where("q.quest_id = ?", questID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("quest not found: %s", questID)
		}
		return nil, err
	}

	r.cache.Add(questCacheKey(guildID, questID), quest)
	return quest, nil
}

func (r *questRepository) AllForGuild(ctx context.Context, db bun.IDB, guildID string) ([]*models.Quest, error) {
	var quests []*models.Quest
	err := db.NewSelect().
		Model(&quests).
		Relation("Steps", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("step_order ASC")
		}).
		Where("q.guild_id = ?", guildID).
		Order("q.quest_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	for _, quest := range quests {
		r.cache.Add(questCacheKey(guildID, quest.QuestID), quest)
	}
	return quests, nil
}

func (r *questRepository) Create(ctx context.Context, db bun.IDB, quest *models.Quest) error {
	quest.CreatedAt = time.Now()
	quest.UpdatedAt = time.Now()
	if _, err := db.NewInsert().Model(quest).Exec(ctx); err != nil {
		return err
	}

	for _, step := range quest.Steps {
		step.QuestID = quest.ID
		step.CreatedAt = time.Now()
		step.UpdatedAt = time.Now()
	}
	if len(quest.Steps) > 0 {
		if _, err := db.NewInsert().Model(&quest.Steps).Exec(ctx); err != nil {
			return err
		}
	}

	r.cache.Add(questCacheKey(quest.GuildID, quest.QuestID), quest)
	return nil
}
