package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

type PartyRepository interface {
	Get(ctx context.Context, db bun.IDB, guildID string, partyID int64) (*models.Party, error)
	Create(ctx context.Context, db bun.IDB, party *models.Party) error
}

type partyRepository struct{}

func NewPartyRepository() PartyRepository {
	return &partyRepository{}
}

func (r *partyRepository) Get(ctx context.Context, db bun.IDB, guildID string, partyID int64) (*models.Party, error) {
	party := new(models.Party)
	err := db.NewSelect().
		Model(party).
		Where("guild_id = ?", guildID).
		Where("id = ?", partyID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("party not found: %d", partyID)
		}
		return nil, err
	}
	return party, nil
}

func (r *partyRepository) Create(ctx context.Context, db bun.IDB, party *models.Party) error {
	party.CreatedAt = time.Now()
	party.UpdatedAt = time.Now()
	_, err := db.NewInsert().Model(party).Exec(ctx)
	return err
}
