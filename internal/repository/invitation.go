package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/db"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type InvitationRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewInvitationRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *InvitationRepository {
	return &InvitationRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toDomainInvitation(i db.ClanInvitation) *domain.ClanInvitation {
	return &domain.ClanInvitation{
		ID:          i.ID,
		ClanID:      i.ClanID,
		PlayerID:    i.PlayerID,
		InvitedByID: i.InvitedByID,
		Message:     i.Message,
		Status:      domain.InvitationStatus(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toDomainInvitations(rows []db.ClanInvitation) []domain.ClanInvitation {
	result := make([]domain.ClanInvitation, len(rows))
	for i, row := range rows {
		result[i] = *toDomainInvitation(row)
	}
	return result
}

// Open creates a pending invitation, or reopens an earlier settled invitation
// to the same clan. It fails with ErrConflict while one is still pending.
func (r *InvitationRepository) Open(ctx context.Context, inv *domain.ClanInvitation) (*domain.ClanInvitation, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation id: %w", err)
	}

	now := time.Now().UTC()
	n, err := r.queries.UpsertInvitation(ctx, db.UpsertInvitationParams{
		ID:          id,
		ClanID:      inv.ClanID,
		PlayerID:    inv.PlayerID,
		InvitedByID: inv.InvitedByID,
		Message:     inv.Message,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, mapError(err, "failed to open invitation")
	}
	if n == 0 {
		return nil, fmt.Errorf("invitation already pending: %w", domain.ErrConflict)
	}

	row, err := r.queries.GetInvitationByClanPlayer(ctx, db.GetInvitationByClanPlayerParams{
		ClanID:   inv.ClanID,
		PlayerID: inv.PlayerID,
	})
	if err != nil {
		return nil, mapError(err, "failed to load invitation")
	}
	return toDomainInvitation(row), nil
}

func (r *InvitationRepository) Get(ctx context.Context, id string) (*domain.ClanInvitation, error) {
	row, err := r.queries.GetInvitation(ctx, id)
	if err != nil {
		return nil, mapError(err, "failed to get invitation")
	}
	return toDomainInvitation(row), nil
}

func (r *InvitationRepository) ListByClan(ctx context.Context, clanID string, status domain.InvitationStatus) ([]domain.ClanInvitation, error) {
	rows, err := r.queries.ListInvitationsByClan(ctx, db.ListInvitationsByClanParams{
		ClanID: clanID,
		Status: string(status),
	})
	if err != nil {
		return nil, mapError(err, "failed to list clan invitations")
	}
	return toDomainInvitations(rows), nil
}

func (r *InvitationRepository) ListByPlayer(ctx context.Context, playerID string, status domain.InvitationStatus) ([]domain.ClanInvitation, error) {
	rows, err := r.queries.ListInvitationsByPlayer(ctx, db.ListInvitationsByPlayerParams{
		PlayerID: playerID,
		Status:   string(status),
	})
	if err != nil {
		return nil, mapError(err, "failed to list player invitations")
	}
	return toDomainInvitations(rows), nil
}

// Resolve moves a pending invitation to status. It fails with ErrInvalidState
// when the invitation is no longer pending.
func (r *InvitationRepository) Resolve(ctx context.Context, id string, status domain.InvitationStatus) error {
	return resolveInvitation(ctx, r.queries, id, status, time.Now().UTC())
}

func resolveInvitation(ctx context.Context, q *db.Queries, id string, status domain.InvitationStatus, at time.Time) error {
	n, err := q.UpdateInvitationStatus(ctx, db.UpdateInvitationStatusParams{
		Status:     string(status),
		UpdatedAt:  at,
		ID:         id,
		FromStatus: string(domain.InvitationPending),
	})
	if err != nil {
		return mapError(err, "failed to update invitation status")
	}
	if n == 0 {
		return fmt.Errorf("invitation %s is not pending: %w", id, domain.ErrInvalidState)
	}
	return nil
}

// Accept marks the invitation accepted and joins the invitee to the clan.
// The invitee's pending applications elsewhere are withdrawn.
func (r *InvitationRepository) Accept(ctx context.Context, inv *domain.ClanInvitation, snapshot *stats.Snapshot) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := resolveInvitation(ctx, qtx, inv.ID, domain.InvitationAccepted, now); err != nil {
		return err
	}
	if err := addMember(ctx, qtx, inv.ClanID, inv.PlayerID, domain.RoleMember, snapshot, now); err != nil {
		return err
	}

	err = qtx.WithdrawOtherPendingApplications(ctx, db.WithdrawOtherPendingApplicationsParams{
		UpdatedAt: now,
		PlayerID:  inv.PlayerID,
	})
	if err != nil {
		return mapError(err, "failed to withdraw pending applications")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invitation acceptance: %w", err)
	}

	r.logger.Info().
		Str("invitation_id", inv.ID).
		Str("clan_id", inv.ClanID).
		Str("player_id", inv.PlayerID).
		Msg("invitation accepted")
	return nil
}
