package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/db"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type ClanRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewClanRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ClanRepository {
	return &ClanRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toDomainClan(row db.ClanRow) (*domain.Clan, error) {
	clan := &domain.Clan{
		ID:          row.ID,
		Name:        row.Name,
		Tag:         row.Tag,
		Description: row.Description,
		Theme:       domain.ClanTheme(row.Theme),
		BannerURL:   row.BannerUrl,
		LogoURL:     row.LogoUrl,
		Level:       int(row.Level),
		WinRate:     row.Winrate,
		CreatedAt:   row.CreatedAt,
		OwnerID:     row.OwnerID.String,
		MemberCount: int(row.MemberCount),
	}
	if len(row.Requirements) > 0 {
		if err := json.Unmarshal(row.Requirements, &clan.Requirements); err != nil {
			return nil, fmt.Errorf("failed to decode requirements of clan %s: %w", row.ID, err)
		}
	}
	return clan, nil
}

func newMemberID() (string, error) {
	return gonanoid.New()
}

// Create inserts the clan and makes ownerID its owner in one transaction.
// The returned clan carries its generated ID.
func (r *ClanRepository) Create(ctx context.Context, clan *domain.Clan, ownerID string) (*domain.Clan, error) {
	requirements, err := json.Marshal(clan.Requirements)
	if err != nil {
		return nil, fmt.Errorf("failed to encode requirements: %w", err)
	}
	now := time.Now().UTC()
	clanID := uuid.NewString()
	level := clan.Level
	if level == 0 {
		level = 1
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	err = qtx.CreateClan(ctx, db.CreateClanParams{
		ID:           clanID,
		Name:         clan.Name,
		Tag:          clan.Tag,
		Description:  clan.Description,
		Theme:        string(clan.Theme),
		BannerUrl:    clan.BannerURL,
		LogoUrl:      clan.LogoURL,
		Requirements: string(requirements),
		Level:        int64(level),
		Winrate:      clan.WinRate,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, mapError(err, "failed to create clan")
	}

	if err := addMember(ctx, qtx, clanID, ownerID, domain.RoleOwner, nil, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit clan: %w", err)
	}

	r.logger.Debug().Str("clan_id", clanID).Str("owner_id", ownerID).Msg("clan created")
	return r.Get(ctx, clanID)
}

func (r *ClanRepository) Get(ctx context.Context, id string) (*domain.Clan, error) {
	row, err := r.queries.GetClan(ctx, id)
	if err != nil {
		return nil, mapError(err, "failed to get clan")
	}
	return toDomainClan(row)
}

// TagTaken reports whether another clan already uses tag, ignoring case.
func (r *ClanRepository) TagTaken(ctx context.Context, tag, excludeID string) (bool, error) {
	taken, err := r.queries.ClanTagExists(ctx, db.ClanTagExistsParams{
		Tag:       tag,
		ExcludeID: excludeID,
	})
	if err != nil {
		return false, mapError(err, "failed to check clan tag")
	}
	return taken, nil
}

func (r *ClanRepository) List(ctx context.Context, limit, offset int) ([]domain.Clan, error) {
	rows, err := r.queries.ListClans(ctx, db.ListClansParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, mapError(err, "failed to list clans")
	}

	result := make([]domain.Clan, 0, len(rows))
	for _, row := range rows {
		clan, err := toDomainClan(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *clan)
	}
	return result, nil
}

func (r *ClanRepository) Update(ctx context.Context, clan *domain.Clan) error {
	requirements, err := json.Marshal(clan.Requirements)
	if err != nil {
		return fmt.Errorf("failed to encode requirements: %w", err)
	}

	err = r.queries.UpdateClan(ctx, db.UpdateClanParams{
		Name:         clan.Name,
		Tag:          clan.Tag,
		Description:  clan.Description,
		Theme:        string(clan.Theme),
		BannerUrl:    clan.BannerURL,
		LogoUrl:      clan.LogoURL,
		Requirements: string(requirements),
		ID:           clan.ID,
	})
	return mapError(err, "failed to update clan")
}

// Delete removes the clan and clears the current clan of everyone in it.
func (r *ClanRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := qtx.ClearCurrentClan(ctx, id); err != nil {
		return mapError(err, "failed to clear current clan")
	}
	n, err := qtx.DeleteClan(ctx, id)
	if err != nil {
		return mapError(err, "failed to delete clan")
	}
	if n == 0 {
		return mapError(sql.ErrNoRows, "failed to delete clan")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clan deletion: %w", err)
	}

	r.logger.Debug().Str("clan_id", id).Msg("clan deleted")
	return nil
}
