package db

import (
	"context"
	"database/sql"
	"time"
)

const playerColumns = `id, steam_id, username, discord_id, discord_username, discord_avatar, avatar_url, current_clan_id, created_at, last_login`

func scanPlayer(row interface{ Scan(...interface{}) error }) (Player, error) {
	var i Player
	err := row.Scan(
		&i.ID,
		&i.SteamID,
		&i.Username,
		&i.DiscordID,
		&i.DiscordUsername,
		&i.DiscordAvatar,
		&i.AvatarUrl,
		&i.CurrentClanID,
		&i.CreatedAt,
		&i.LastLogin,
	)
	return i, err
}

const upsertPlayer = `
INSERT INTO players (id, steam_id, username, discord_id, discord_username, discord_avatar, avatar_url, created_at, last_login)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (steam_id) DO UPDATE SET
    username = excluded.username,
    discord_id = CASE WHEN excluded.discord_id <> '' THEN excluded.discord_id ELSE players.discord_id END,
    discord_username = CASE WHEN excluded.discord_username <> '' THEN excluded.discord_username ELSE players.discord_username END,
    discord_avatar = CASE WHEN excluded.discord_avatar <> '' THEN excluded.discord_avatar ELSE players.discord_avatar END,
    avatar_url = CASE WHEN excluded.avatar_url <> '' THEN excluded.avatar_url ELSE players.avatar_url END,
    last_login = excluded.last_login
`

type UpsertPlayerParams struct {
	ID              string
	SteamID         string
	Username        string
	DiscordID       string
	DiscordUsername string
	DiscordAvatar   string
	AvatarUrl       string
	CreatedAt       time.Time
	LastLogin       time.Time
}

func (q *Queries) UpsertPlayer(ctx context.Context, arg UpsertPlayerParams) error {
	_, err := q.db.ExecContext(ctx, upsertPlayer,
		arg.ID,
		arg.SteamID,
		arg.Username,
		arg.DiscordID,
		arg.DiscordUsername,
		arg.DiscordAvatar,
		arg.AvatarUrl,
		arg.CreatedAt,
		arg.LastLogin,
	)
	return err
}

const getPlayerByID = `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

func (q *Queries) GetPlayerByID(ctx context.Context, id string) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayerByID, id))
}

const getPlayerBySteamID = `SELECT ` + playerColumns + ` FROM players WHERE steam_id = $1`

func (q *Queries) GetPlayerBySteamID(ctx context.Context, steamID string) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayerBySteamID, steamID))
}

const listPlayers = `SELECT ` + playerColumns + ` FROM players ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`

type ListPlayersParams struct {
	Limit  int64
	Offset int64
}

func (q *Queries) ListPlayers(ctx context.Context, arg ListPlayersParams) ([]Player, error) {
	return q.queryPlayers(ctx, listPlayers, arg.Limit, arg.Offset)
}

const searchPlayers = `SELECT ` + playerColumns + ` FROM players WHERE LOWER(username) LIKE LOWER($1) ESCAPE '\' ORDER BY username LIMIT $2`

type SearchPlayersParams struct {
	Username string
	Limit    int64
}

func (q *Queries) SearchPlayers(ctx context.Context, arg SearchPlayersParams) ([]Player, error) {
	return q.queryPlayers(ctx, searchPlayers, arg.Username, arg.Limit)
}

func (q *Queries) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Player
	for rows.Next() {
		i, err := scanPlayer(rows)
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

const updatePlayerProfile = `UPDATE players SET username = $1, avatar_url = $2 WHERE id = $3`

type UpdatePlayerProfileParams struct {
	Username  string
	AvatarUrl string
	ID        string
}

func (q *Queries) UpdatePlayerProfile(ctx context.Context, arg UpdatePlayerProfileParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePlayerProfile, arg.Username, arg.AvatarUrl, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const setPlayerCurrentClan = `UPDATE players SET current_clan_id = $1 WHERE id = $2`

type SetPlayerCurrentClanParams struct {
	CurrentClanID sql.NullString
	ID            string
}

func (q *Queries) SetPlayerCurrentClan(ctx context.Context, arg SetPlayerCurrentClanParams) error {
	_, err := q.db.ExecContext(ctx, setPlayerCurrentClan, arg.CurrentClanID, arg.ID)
	return err
}

const clearCurrentClan = `UPDATE players SET current_clan_id = NULL WHERE current_clan_id = $1`

func (q *Queries) ClearCurrentClan(ctx context.Context, clanID string) error {
	_, err := q.db.ExecContext(ctx, clearCurrentClan, clanID)
	return err
}
