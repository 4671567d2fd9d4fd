package db

import (
	"context"
	"time"
)

const applicationColumns = `id, clan_id, player_id, player_name, player_steam_id, message, status, stats_snapshot, created_at, updated_at`

func scanApplication(row interface{ Scan(...interface{}) error }) (ClanApplication, error) {
	var i ClanApplication
	err := row.Scan(
		&i.ID,
		&i.ClanID,
		&i.PlayerID,
		&i.PlayerName,
		&i.PlayerSteamID,
		&i.Message,
		&i.Status,
		&i.StatsSnapshot,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createApplication = `
INSERT INTO clan_applications (id, clan_id, player_id, player_name, player_steam_id, message, status, stats_snapshot, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

type CreateApplicationParams struct {
	ID            string
	ClanID        string
	PlayerID      string
	PlayerName    string
	PlayerSteamID string
	Message       string
	Status        string
	StatsSnapshot string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *Queries) CreateApplication(ctx context.Context, arg CreateApplicationParams) error {
	_, err := q.db.ExecContext(ctx, createApplication,
		arg.ID,
		arg.ClanID,
		arg.PlayerID,
		arg.PlayerName,
		arg.PlayerSteamID,
		arg.Message,
		arg.Status,
		arg.StatsSnapshot,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getApplication = `SELECT ` + applicationColumns + ` FROM clan_applications WHERE id = $1`

func (q *Queries) GetApplication(ctx context.Context, id string) (ClanApplication, error) {
	return scanApplication(q.db.QueryRowContext(ctx, getApplication, id))
}

const listApplicationsByClan = `
SELECT ` + applicationColumns + `
FROM clan_applications
WHERE clan_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at DESC, id
`

type ListApplicationsByClanParams struct {
	ClanID string
	Status string
}

func (q *Queries) ListApplicationsByClan(ctx context.Context, arg ListApplicationsByClanParams) ([]ClanApplication, error) {
	return q.queryApplications(ctx, listApplicationsByClan, arg.ClanID, arg.Status)
}

const listApplicationsByPlayer = `
SELECT ` + applicationColumns + `
FROM clan_applications
WHERE player_id = $1
ORDER BY created_at DESC, id
`

func (q *Queries) ListApplicationsByPlayer(ctx context.Context, playerID string) ([]ClanApplication, error) {
	return q.queryApplications(ctx, listApplicationsByPlayer, playerID)
}

func (q *Queries) queryApplications(ctx context.Context, query string, args ...interface{}) ([]ClanApplication, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ClanApplication
	for rows.Next() {
		i, err := scanApplication(rows)
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

const hasPendingApplication = `
SELECT COUNT(*) FROM clan_applications
WHERE clan_id = $1 AND player_id = $2 AND status = 'pending'
`

type HasPendingApplicationParams struct {
	ClanID   string
	PlayerID string
}

func (q *Queries) HasPendingApplication(ctx context.Context, arg HasPendingApplicationParams) (bool, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, hasPendingApplication, arg.ClanID, arg.PlayerID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateApplicationStatus only moves applications that are still in the
// expected status; zero rows affected means the transition lost a race.
const updateApplicationStatus = `
UPDATE clan_applications SET status = $1, updated_at = $2
WHERE id = $3 AND status = $4
`

type UpdateApplicationStatusParams struct {
	Status     string
	UpdatedAt  time.Time
	ID         string
	FromStatus string
}

func (q *Queries) UpdateApplicationStatus(ctx context.Context, arg UpdateApplicationStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateApplicationStatus, arg.Status, arg.UpdatedAt, arg.ID, arg.FromStatus)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const withdrawOtherPendingApplications = `
UPDATE clan_applications SET status = 'withdrawn', updated_at = $1
WHERE player_id = $2 AND id <> $3 AND status = 'pending'
`

type WithdrawOtherPendingApplicationsParams struct {
	UpdatedAt time.Time
	PlayerID  string
	KeepID    string
}

func (q *Queries) WithdrawOtherPendingApplications(ctx context.Context, arg WithdrawOtherPendingApplicationsParams) error {
	_, err := q.db.ExecContext(ctx, withdrawOtherPendingApplications, arg.UpdatedAt, arg.PlayerID, arg.KeepID)
	return err
}
