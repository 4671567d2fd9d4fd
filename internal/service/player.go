package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ars145/ZarubaProfile-sub000/internal/api"
	"github.com/Ars145/ZarubaProfile-sub000/internal/constants"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/repository"
	"github.com/rs/zerolog"
)

type PlayerService struct {
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, logger: logger}
}

type UpsertPlayerInput struct {
	SteamID         string
	Username        string
	DiscordID       string
	DiscordUsername string
	DiscordAvatar   string
	AvatarURL       string
}

// Upsert records a login. The Steam ID may be given in any notation and is
// stored in its 64-bit form.
func (s *PlayerService) Upsert(ctx context.Context, in UpsertPlayerInput) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	steamID, err := normalizeSteamID(in.SteamID)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", domain.ErrInvalidInput)
	}

	player, err := s.repo.Upsert(ctx, &domain.Player{
		SteamID:         steamID,
		Username:        username,
		DiscordID:       in.DiscordID,
		DiscordUsername: in.DiscordUsername,
		DiscordAvatar:   in.DiscordAvatar,
		AvatarURL:       in.AvatarURL,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("player_id", player.ID).Str("steam_id", steamID).Msg("player upserted")
	return player, nil
}

func (s *PlayerService) Get(ctx context.Context, id string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.Get(ctx, id)
}

func (s *PlayerService) GetBySteamID(ctx context.Context, rawSteamID string) (*domain.Player, error) {
	steamID, err := normalizeSteamID(rawSteamID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.GetBySteamID(ctx, steamID)
}

func (s *PlayerService) List(ctx context.Context, limit, offset int) ([]domain.Player, error) {
	if limit <= 0 || limit > constants.LeaderboardMaxLimit {
		limit = constants.LeaderboardMaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.List(ctx, limit, offset)
}

func (s *PlayerService) Search(ctx context.Context, query string) ([]domain.Player, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty: %w", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.Search(ctx, query, constants.SearchSuggestionLimit)
}

// UpdateProfile changes the acting player's own display fields.
func (s *PlayerService) UpdateProfile(ctx context.Context, playerID, username, avatarURL string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", domain.ErrInvalidInput)
	}

	if err := s.repo.UpdateProfile(ctx, playerID, username, avatarURL); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, playerID)
}

func normalizeSteamID(raw string) (string, error) {
	steamID, err := api.NormalizeSteamID(raw)
	if errors.Is(err, api.ErrInvalidSteamID) {
		return "", fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	return steamID, err
}
