package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/db"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/stats"
)

func toDomainMember(m db.ClanMember) (*domain.ClanMember, error) {
	member := &domain.ClanMember{
		ID:       m.ID,
		ClanID:   m.ClanID,
		PlayerID: m.PlayerID,
		Role:     domain.MemberRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
	if len(m.StatsSnapshot) > 0 {
		var snapshot stats.Snapshot
		if err := json.Unmarshal(m.StatsSnapshot, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot of member %s: %w", m.ID, err)
		}
		member.StatsSnapshot = &snapshot
	}
	return member, nil
}

func encodeSnapshot(snapshot *stats.Snapshot) (sql.NullString, error) {
	if snapshot == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// addMember inserts a member row and points the player at the clan. It runs on
// the caller's transaction.
func addMember(ctx context.Context, qtx *db.Queries, clanID, playerID string, role domain.MemberRole, snapshot *stats.Snapshot, joinedAt time.Time) error {
	memberID, err := newMemberID()
	if err != nil {
		return fmt.Errorf("failed to generate member id: %w", err)
	}
	encoded, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	err = qtx.AddClanMember(ctx, db.AddClanMemberParams{
		ID:            memberID,
		ClanID:        clanID,
		PlayerID:      playerID,
		Role:          string(role),
		StatsSnapshot: encoded,
		JoinedAt:      joinedAt,
	})
	if err != nil {
		return mapError(err, "failed to add clan member")
	}

	err = qtx.SetPlayerCurrentClan(ctx, db.SetPlayerCurrentClanParams{
		CurrentClanID: nullString(clanID),
		ID:            playerID,
	})
	return mapError(err, "failed to set current clan")
}

func (r *ClanRepository) Members(ctx context.Context, clanID string) ([]domain.ClanMember, error) {
	rows, err := r.queries.ListClanMembers(ctx, clanID)
	if err != nil {
		return nil, mapError(err, "failed to list clan members")
	}

	result := make([]domain.ClanMember, 0, len(rows))
	for _, row := range rows {
		member, err := toDomainMember(row.ClanMember)
		if err != nil {
			return nil, err
		}
		member.Player = toDomainPlayer(row.Player)
		result = append(result, *member)
	}
	return result, nil
}

func (r *ClanRepository) GetMember(ctx context.Context, clanID, playerID string) (*domain.ClanMember, error) {
	m, err := r.queries.GetClanMember(ctx, db.GetClanMemberParams{
		ClanID:   clanID,
		PlayerID: playerID,
	})
	if err != nil {
		return nil, mapError(err, "failed to get clan member")
	}
	return toDomainMember(m)
}

func (r *ClanRepository) AddMember(ctx context.Context, clanID, playerID string, snapshot *stats.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := addMember(ctx, r.queries.WithTx(tx), clanID, playerID, domain.RoleMember, snapshot, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

// RemoveMember deletes the membership and clears the player's current clan.
func (r *ClanRepository) RemoveMember(ctx context.Context, clanID, playerID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	n, err := qtx.RemoveClanMember(ctx, db.RemoveClanMemberParams{
		ClanID:   clanID,
		PlayerID: playerID,
	})
	if err != nil {
		return mapError(err, "failed to remove clan member")
	}
	if n == 0 {
		return mapError(sql.ErrNoRows, "failed to remove clan member")
	}

	err = qtx.SetPlayerCurrentClan(ctx, db.SetPlayerCurrentClanParams{ID: playerID})
	if err != nil {
		return mapError(err, "failed to clear current clan")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit member removal: %w", err)
	}

	r.logger.Debug().Str("clan_id", clanID).Str("player_id", playerID).Msg("member removed")
	return nil
}

// TransferOwnership demotes fromID and promotes toID atomically, leaving the
// clan with exactly one owner.
func (r *ClanRepository) TransferOwnership(ctx context.Context, clanID, fromID, toID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	n, err := qtx.UpdateClanMemberRole(ctx, db.UpdateClanMemberRoleParams{
		Role:     string(domain.RoleMember),
		ClanID:   clanID,
		PlayerID: fromID,
	})
	if err != nil {
		return mapError(err, "failed to demote owner")
	}
	if n == 0 {
		return mapError(sql.ErrNoRows, "failed to demote owner")
	}

	n, err = qtx.UpdateClanMemberRole(ctx, db.UpdateClanMemberRoleParams{
		Role:     string(domain.RoleOwner),
		ClanID:   clanID,
		PlayerID: toID,
	})
	if err != nil {
		return mapError(err, "failed to promote member")
	}
	if n == 0 {
		return mapError(sql.ErrNoRows, "failed to promote member")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ownership transfer: %w", err)
	}

	r.logger.Info().Str("clan_id", clanID).Str("from", fromID).Str("to", toID).Msg("ownership transferred")
	return nil
}
