package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

type WorldStateRepository interface {
	GetFlag(ctx context.Context, db bun.IDB, guildID, flag string) (*models.WorldState, error)
	SetFlag(ctx context.Context, db bun.IDB, guildID, flag string, value any) error
}

type worldStateRepository struct{}

func NewWorldStateRepository() WorldStateRepository {
	return &worldStateRepository{}
}

func (r *worldStateRepository) GetFlag(ctx context.Context, db bun.IDB, guildID, flag string) (*models.WorldState, error) {
	state := new(models.WorldState)
	err := db.NewSelect().
		Model(state).
		Where("guild_id = ?", guildID).
		Where("flag = ?", flag).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return state, nil
}

func (r *worldStateRepository) SetFlag(ctx context.Context, db bun.IDB, guildID, flag string, value any) error {
	state := &models.WorldState{
		GuildID:   guildID,
		Flag:      flag,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	_, err := db.NewInsert().
		Model(state).
		On("CONFLICT (guild_id, flag) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
