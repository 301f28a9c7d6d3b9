package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

type PlayerRepository interface {
	Get(ctx context.Context, db bun.IDB, guildID, playerID string) (*models.Player, error)
	// AwardExperience bumps the player's XP counter and writes an audit row
	// tagged with the event that caused the grant.
	AwardExperience(ctx context.Context, db bun.IDB, guildID, playerID, entityType string, amount int, sourceEventType string, sourceLogID int64) error
}

type playerRepository struct{}

func NewPlayerRepository() PlayerRepository {
	return &playerRepository{}
}

func (r *playerRepository) Get(ctx context.Context, db bun.IDB, guildID, playerID string) (*models.Player, error) {
	player := new(models.Player)
	err := db.NewSelect().
		Model(player).
		Where("guild_id = ?", guildID).
		Where("player_id = ?", playerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return player, nil
}

func (r *playerRepository) AwardExperience(ctx context.Context, db bun.IDB, guildID, playerID, entityType string, amount int, sourceEventType string, sourceLogID int64) error {
	now := time.Now()
	player := &models.Player{
		GuildID:    guildID,
		PlayerID:   playerID,
		Experience: int64(amount),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err := db.NewInsert().
		Model(player).
		On("CONFLICT (guild_id, player_id) DO UPDATE").
		Set("experience = players.experience + EXCLUDED.experience").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return err
	}

	award := &models.ExperienceAward{
		GuildID:         guildID,
		PlayerID:        playerID,
		EntityType:      entityType,
		Amount:          amount,
		SourceEventType: sourceEventType,
		SourceLogID:     sourceLogID,
		CreatedAt:       now,
	}
	_, err = db.NewInsert().Model(award).Exec(ctx)
	return err
}
