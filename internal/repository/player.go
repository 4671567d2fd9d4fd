package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/db"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toDomainPlayer(p db.Player) *domain.Player {
	return &domain.Player{
		ID:              p.ID,
		SteamID:         p.SteamID,
		Username:        p.Username,
		DiscordID:       p.DiscordID,
		DiscordUsername: p.DiscordUsername,
		DiscordAvatar:   p.DiscordAvatar,
		AvatarURL:       p.AvatarUrl,
		CurrentClanID:   p.CurrentClanID.String,
		CreatedAt:       p.CreatedAt,
		LastLogin:       p.LastLogin,
	}
}

// Upsert creates the player on first sight of a Steam ID and refreshes the
// login fields afterwards. The stored row is returned.
func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	now := time.Now().UTC()
	id := player.ID
	if id == "" {
		id = uuid.NewString()
	}

	err := r.queries.UpsertPlayer(ctx, db.UpsertPlayerParams{
		ID:              id,
		SteamID:         player.SteamID,
		Username:        player.Username,
		DiscordID:       player.DiscordID,
		DiscordUsername: player.DiscordUsername,
		DiscordAvatar:   player.DiscordAvatar,
		AvatarUrl:       player.AvatarURL,
		CreatedAt:       now,
		LastLogin:       now,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("steam_id", player.SteamID).Msg("failed to upsert player")
		return nil, mapError(err, "failed to upsert player")
	}

	return r.GetBySteamID(ctx, player.SteamID)
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	player, err := r.queries.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, mapError(err, "failed to get player")
	}
	return toDomainPlayer(player), nil
}

func (r *PlayerRepository) GetBySteamID(ctx context.Context, steamID string) (*domain.Player, error) {
	player, err := r.queries.GetPlayerBySteamID(ctx, steamID)
	if err != nil {
		return nil, mapError(err, "failed to get player by steam id")
	}
	return toDomainPlayer(player), nil
}

func (r *PlayerRepository) List(ctx context.Context, limit, offset int) ([]domain.Player, error) {
	players, err := r.queries.ListPlayers(ctx, db.ListPlayersParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, mapError(err, "failed to list players")
	}
	return toDomainPlayers(players), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search matches usernames containing query literally, case-insensitively.
func (r *PlayerRepository) Search(ctx context.Context, query string, limit int) ([]domain.Player, error) {
	escaped := likeEscaper.Replace(query)
	players, err := r.queries.SearchPlayers(ctx, db.SearchPlayersParams{
		Username: "%" + escaped + "%",
		Limit:    int64(limit),
	})
	if err != nil {
		return nil, mapError(err, "failed to search players")
	}
	return toDomainPlayers(players), nil
}

func (r *PlayerRepository) UpdateProfile(ctx context.Context, id, username, avatarURL string) error {
	n, err := r.queries.UpdatePlayerProfile(ctx, db.UpdatePlayerProfileParams{
		Username:  username,
		AvatarUrl: avatarURL,
		ID:        id,
	})
	if err != nil {
		return mapError(err, "failed to update player profile")
	}
	if n == 0 {
		return mapError(sql.ErrNoRows, "failed to update player profile")
	}
	return nil
}

func toDomainPlayers(players []db.Player) []domain.Player {
	result := make([]domain.Player, len(players))
	for i, p := range players {
		result[i] = *toDomainPlayer(p)
	}
	return result
}
