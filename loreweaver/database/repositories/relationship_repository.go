package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

type RelationshipRepository interface {
	Get(ctx context.Context, db bun.IDB, guildID, actingEntityID, actingEntityType, targetEntityID, targetEntityType string) (*models.Relationship, error)
	// UpdateRelationship accumulates a score delta between two entities,
	// recording the event that caused the change.
	UpdateRelationship(ctx context.Context, db bun.IDB, guildID, actingEntityID, actingEntityType, targetEntityID, targetEntityType string, delta int, eventType string, sourceLogID int64) error
}

type relationshipRepository struct{}

func NewRelationshipRepository() RelationshipRepository {
	return &relationshipRepository{}
}

func (r *relationshipRepository) Get(ctx context.Context, db bun.IDB, guildID, actingEntityID, actingEntityType, targetEntityID, targetEntityType string) (*models.Relationship, error) {
	rel := new(models.Relationship)
	err := db.NewSelect().
		Model(rel).
		Where("guild_id = ?", guildID).
		Where("acting_entity_id = ? AND acting_entity_type = ?", actingEntityID, actingEntityType).
		Where("target_entity_id = ? AND target_entity_type = ?", targetEntityID, targetEntityType).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rel, nil
}

func (r *relationshipRepository) UpdateRelationship(ctx context.Context, db bun.IDB, guildID, actingEntityID, actingEntityType, targetEntityID, targetEntityType string, delta int, eventType string, sourceLogID int64) error {
	rel := &models.Relationship{
		GuildID:          guildID,
		ActingEntityID:   actingEntityID,
		ActingEntityType: actingEntityType,
		TargetEntityID:   targetEntityID,
		TargetEntityType: targetEntityType,
		Score:            delta,
		LastEventType:    eventType,
		LastEventLogID:   sourceLogID,
		UpdatedAt:        time.Now(),
	}
	_, err := db.NewInsert().
		Model(rel).
		On("CONFLICT (guild_id, acting_entity_id, acting_entity_type, target_entity_id, target_entity_type) DO UPDATE").
		Set("score = relationships.score + EXCLUDED.score").
		Set("last_event_type = EXCLUDED.last_event_type").
		Set("last_event_log_id = EXCLUDED.last_event_log_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
