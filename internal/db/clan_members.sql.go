package db

import (
	"context"
	"database/sql"
	"time"
)

const addClanMember = `
INSERT INTO clan_members (id, clan_id, player_id, role, stats_snapshot, joined_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

type AddClanMemberParams struct {
	ID            string
	ClanID        string
	PlayerID      string
	Role          string
	StatsSnapshot sql.NullString
	JoinedAt      time.Time
}

func (q *Queries) AddClanMember(ctx context.Context, arg AddClanMemberParams) error {
	_, err := q.db.ExecContext(ctx, addClanMember,
		arg.ID,
		arg.ClanID,
		arg.PlayerID,
		arg.Role,
		arg.StatsSnapshot,
		arg.JoinedAt,
	)
	return err
}

const getClanMember = `
SELECT id, clan_id, player_id, role, stats_snapshot, joined_at
FROM clan_members
WHERE clan_id = $1 AND player_id = $2
`

type GetClanMemberParams struct {
	ClanID   string
	PlayerID string
}

func (q *Queries) GetClanMember(ctx context.Context, arg GetClanMemberParams) (ClanMember, error) {
	row := q.db.QueryRowContext(ctx, getClanMember, arg.ClanID, arg.PlayerID)
	var i ClanMember
	err := row.Scan(
		&i.ID,
		&i.ClanID,
		&i.PlayerID,
		&i.Role,
		&i.StatsSnapshot,
		&i.JoinedAt,
	)
	return i, err
}

type ListClanMembersRow struct {
	ClanMember
	Player Player
}

const listClanMembers = `
SELECT m.id, m.clan_id, m.player_id, m.role, m.stats_snapshot, m.joined_at,
    p.id, p.steam_id, p.username, p.discord_id, p.discord_username, p.discord_avatar, p.avatar_url, p.current_clan_id, p.created_at, p.last_login
FROM clan_members m
JOIN players p ON p.id = m.player_id
WHERE m.clan_id = $1
ORDER BY CASE m.role WHEN 'owner' THEN 0 ELSE 1 END, m.joined_at, m.id
`

func (q *Queries) ListClanMembers(ctx context.Context, clanID string) ([]ListClanMembersRow, error) {
	rows, err := q.db.QueryContext(ctx, listClanMembers, clanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListClanMembersRow
	for rows.Next() {
		var i ListClanMembersRow
		if err := rows.Scan(
			&i.ID,
			&i.ClanID,
			&i.PlayerID,
			&i.Role,
			&i.StatsSnapshot,
			&i.JoinedAt,
			&i.Player.ID,
			&i.Player.SteamID,
			&i.Player.Username,
			&i.Player.DiscordID,
			&i.Player.DiscordUsername,
			&i.Player.DiscordAvatar,
			&i.Player.AvatarUrl,
			&i.Player.CurrentClanID,
			&i.Player.CreatedAt,
			&i.Player.LastLogin,
		); err != nil {
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

const removeClanMember = `DELETE FROM clan_members WHERE clan_id = $1 AND player_id = $2`

type RemoveClanMemberParams struct {
	ClanID   string
	PlayerID string
}

func (q *Queries) RemoveClanMember(ctx context.Context, arg RemoveClanMemberParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, removeClanMember, arg.ClanID, arg.PlayerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateClanMemberRole = `UPDATE clan_members SET role = $1 WHERE clan_id = $2 AND player_id = $3`

type UpdateClanMemberRoleParams struct {
	Role     string
	ClanID   string
	PlayerID string
}

func (q *Queries) UpdateClanMemberRole(ctx context.Context, arg UpdateClanMemberRoleParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateClanMemberRole, arg.Role, arg.ClanID, arg.PlayerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
