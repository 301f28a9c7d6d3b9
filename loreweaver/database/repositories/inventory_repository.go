package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

type InventoryRepository interface {
	GetItem(ctx context.Context, db bun.IDB, guildID, playerID, itemID string) (*models.PlayerItem, error)
	GrantItem(ctx context.Context, db bun.IDB, guildID, playerID, itemID string, quantity int) error
}

type inventoryRepository struct{}

func NewInventoryRepository() InventoryRepository {
	return &inventoryRepository{}
}

func (r *inventoryRepository) GetItem(ctx context.Context, db bun.IDB, guildID, playerID, itemID string) (*models.PlayerItem, error) {
	item := new(models.PlayerItem)
	err := db.NewSelect().
		Model(item).
		Where("guild_id = ?", guildID).
		Where("player_id = ?", playerID).
		Where("item_id = ?", itemID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (r *inventoryRepository) GrantItem(ctx context.Context, db bun.IDB, guildID, playerID, itemID string, quantity int) error {
	existing, err := r.GetItem(ctx, db, guildID, playerID, itemID)
	if err != nil {
		return err
	}

	if existing != nil {
		_, err = db.NewUpdate().
			Model((*models.PlayerItem)(nil)).
			Set("quantity = quantity + ?", quantity).
			Set("updated_at = CURRENT_TIMESTAMP").
			Where("id = ?", existing.ID).
			Exec(ctx)
		return err
	}

	now := time.Now()
	item := &models.PlayerItem{
		GuildID:    guildID,
		PlayerID:   playerID,
		ItemID:     itemID,
		Quantity:   quantity,
		ObtainedAt: now,
		UpdatedAt:  now,
	}
	_, err = db.NewInsert().Model(item).Exec(ctx)
	return err
}
