package db

import (
	"context"
	"time"
)

const invitationColumns = `id, clan_id, player_id, invited_by_id, message, status, created_at, updated_at`

func scanInvitation(row interface{ Scan(...interface{}) error }) (ClanInvitation, error) {
	var i ClanInvitation
	err := row.Scan(
		&i.ID,
		&i.ClanID,
		&i.PlayerID,
		&i.InvitedByID,
		&i.Message,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// UpsertInvitation inserts a pending invitation or reopens a settled one for
// the same clan and player. A pending invitation is left untouched and the
// call reports zero rows affected.
const upsertInvitation = `
INSERT INTO clan_invitations (id, clan_id, player_id, invited_by_id, message, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, 'pending', $6, $7)
ON CONFLICT (clan_id, player_id) DO UPDATE SET
    invited_by_id = excluded.invited_by_id,
    message = excluded.message,
    status = 'pending',
    updated_at = excluded.updated_at
WHERE clan_invitations.status <> 'pending'
`

type UpsertInvitationParams struct {
	ID          string
	ClanID      string
	PlayerID    string
	InvitedByID string
	Message     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) UpsertInvitation(ctx context.Context, arg UpsertInvitationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, upsertInvitation,
		arg.ID,
		arg.ClanID,
		arg.PlayerID,
		arg.InvitedByID,
		arg.Message,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getInvitation = `SELECT ` + invitationColumns + ` FROM clan_invitations WHERE id = $1`

func (q *Queries) GetInvitation(ctx context.Context, id string) (ClanInvitation, error) {
	return scanInvitation(q.db.QueryRowContext(ctx, getInvitation, id))
}

const getInvitationByClanPlayer = `SELECT ` + invitationColumns + ` FROM clan_invitations WHERE clan_id = $1 AND player_id = $2`

type GetInvitationByClanPlayerParams struct {
	ClanID   string
	PlayerID string
}

func (q *Queries) GetInvitationByClanPlayer(ctx context.Context, arg GetInvitationByClanPlayerParams) (ClanInvitation, error) {
	return scanInvitation(q.db.QueryRowContext(ctx, getInvitationByClanPlayer, arg.ClanID, arg.PlayerID))
}

const listInvitationsByClan = `
SELECT ` + invitationColumns + `
FROM clan_invitations
WHERE clan_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at DESC, id
`

type ListInvitationsByClanParams struct {
	ClanID string
	Status string
}

func (q *Queries) ListInvitationsByClan(ctx context.Context, arg ListInvitationsByClanParams) ([]ClanInvitation, error) {
	return q.queryInvitations(ctx, listInvitationsByClan, arg.ClanID, arg.Status)
}

const listInvitationsByPlayer = `
SELECT ` + invitationColumns + `
FROM clan_invitations
WHERE player_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at DESC, id
`

type ListInvitationsByPlayerParams struct {
	PlayerID string
	Status   string
}

func (q *Queries) ListInvitationsByPlayer(ctx context.Context, arg ListInvitationsByPlayerParams) ([]ClanInvitation, error) {
	return q.queryInvitations(ctx, listInvitationsByPlayer, arg.PlayerID, arg.Status)
}

func (q *Queries) queryInvitations(ctx context.Context, query string, args ...interface{}) ([]ClanInvitation, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ClanInvitation
	for rows.Next() {
		i, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateInvitationStatus = `
UPDATE clan_invitations SET status = $1, updated_at = $2
WHERE id = $3 AND status = $4
`

type UpdateInvitationStatusParams struct {
	Status     string
	UpdatedAt  time.Time
	ID         string
	FromStatus string
}

func (q *Queries) UpdateInvitationStatus(ctx context.Context, arg UpdateInvitationStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateInvitationStatus, arg.Status, arg.UpdatedAt, arg.ID, arg.FromStatus)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
