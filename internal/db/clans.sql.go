package db

import (
	"context"
	"database/sql"
	"time"
)

// ClanRow is a clan with its owner and member count resolved from membership.
type ClanRow struct {
	Clan
	OwnerID     sql.NullString
	MemberCount int64
}

const clanSelect = `
SELECT c.id, c.name, c.tag, c.description, c.theme, c.banner_url, c.logo_url, c.requirements, c.level, c.winrate, c.created_at,
    (SELECT m.player_id FROM clan_members m WHERE m.clan_id = c.id AND m.role = 'owner' LIMIT 1) AS owner_id,
    (SELECT COUNT(*) FROM clan_members m WHERE m.clan_id = c.id) AS member_count
FROM clans c`

func scanClanRow(row interface{ Scan(...interface{}) error }) (ClanRow, error) {
	var i ClanRow
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Tag,
		&i.Description,
		&i.Theme,
		&i.BannerUrl,
		&i.LogoUrl,
		&i.Requirements,
		&i.Level,
		&i.Winrate,
		&i.CreatedAt,
		&i.OwnerID,
		&i.MemberCount,
	)
	return i, err
}

const createClan = `
INSERT INTO clans (id, name, tag, description, theme, banner_url, logo_url, requirements, level, winrate, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateClanParams struct {
	ID           string
	Name         string
	Tag          string
	Description  string
	Theme        string
	BannerUrl    string
	LogoUrl      string
	Requirements string
	Level        int64
	Winrate      float64
	CreatedAt    time.Time
}

func (q *Queries) CreateClan(ctx context.Context, arg CreateClanParams) error {
	_, err := q.db.ExecContext(ctx, createClan,
		arg.ID,
		arg.Name,
		arg.Tag,
		arg.Description,
		arg.Theme,
		arg.BannerUrl,
		arg.LogoUrl,
		arg.Requirements,
		arg.Level,
		arg.Winrate,
		arg.CreatedAt,
	)
	return err
}

const getClan = clanSelect + ` WHERE c.id = $1`

func (q *Queries) GetClan(ctx context.Context, id string) (ClanRow, error) {
	return scanClanRow(q.db.QueryRowContext(ctx, getClan, id))
}

const clanTagExists = `SELECT COUNT(*) FROM clans WHERE LOWER(tag) = LOWER($1) AND id <> $2`

type ClanTagExistsParams struct {
	Tag       string
	ExcludeID string
}

func (q *Queries) ClanTagExists(ctx context.Context, arg ClanTagExistsParams) (bool, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, clanTagExists, arg.Tag, arg.ExcludeID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

const listClans = clanSelect + ` ORDER BY c.created_at DESC, c.id LIMIT $1 OFFSET $2`

type ListClansParams struct {
	Limit  int64
	Offset int64
}

func (q *Queries) ListClans(ctx context.Context, arg ListClansParams) ([]ClanRow, error) {
	rows, err := q.db.QueryContext(ctx, listClans, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ClanRow
	for rows.Next() {
		i, err := scanClanRow(rows)
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

const updateClan = `
UPDATE clans SET
    name = $1,
    tag = $2,
    description = $3,
    theme = $4,
    banner_url = $5,
    logo_url = $6,
    requirements = $7
WHERE id = $8
`

type UpdateClanParams struct {
	Name         string
	Tag          string
	Description  string
	Theme        string
	BannerUrl    string
	LogoUrl      string
	Requirements string
	ID           string
}

func (q *Queries) UpdateClan(ctx context.Context, arg UpdateClanParams) error {
	_, err := q.db.ExecContext(ctx, updateClan,
		arg.Name,
		arg.Tag,
		arg.Description,
		arg.Theme,
		arg.BannerUrl,
		arg.LogoUrl,
		arg.Requirements,
		arg.ID,
	)
	return err
}

const deleteClan = `DELETE FROM clans WHERE id = $1`

func (q *Queries) DeleteClan(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteClan, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
