package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Ars145/ZarubaProfile-sub000/internal/api"
	"github.com/Ars145/ZarubaProfile-sub000/internal/constants"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/repository"
	"github.com/rs/zerolog"
)

type ClanService struct {
	clans   *repository.ClanRepository
	players *repository.PlayerRepository
	steam   *api.SteamClient
	logger  zerolog.Logger
}

func NewClanService(
	clans *repository.ClanRepository,
	players *repository.PlayerRepository,
	steam *api.SteamClient,
	logger zerolog.Logger,
) *ClanService {
	return &ClanService{clans: clans, players: players, steam: steam, logger: logger}
}

type ClanInput struct {
	Name         string
	Tag          string
	Description  string
	Theme        domain.ClanTheme
	BannerURL    string
	LogoURL      string
	Requirements domain.ClanRequirements
}

type ClanDetails struct {
	Clan    *domain.Clan
	Members []domain.ClanMember
}

func (in *ClanInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Tag = strings.TrimSpace(in.Tag)
	in.Description = strings.TrimSpace(in.Description)
	in.Requirements.CustomRequirement = strings.TrimSpace(in.Requirements.CustomRequirement)
	if in.Theme == "" {
		in.Theme = domain.ThemeOrange
	}

	switch {
	case in.Name == "":
		return fmt.Errorf("clan name is required: %w", domain.ErrInvalidInput)
	case in.Tag == "" || utf8.RuneCountInString(in.Tag) > constants.ClanTagMaxLength:
		return fmt.Errorf("clan tag must be 1 to %d characters: %w", constants.ClanTagMaxLength, domain.ErrInvalidInput)
	case !in.Theme.Valid():
		return fmt.Errorf("unknown theme %q: %w", in.Theme, domain.ErrInvalidInput)
	case utf8.RuneCountInString(in.Requirements.CustomRequirement) > constants.CustomRequirementMaxLength:
		return fmt.Errorf("custom requirement exceeds %d characters: %w", constants.CustomRequirementMaxLength, domain.ErrInvalidInput)
	}
	return nil
}

// Create founds a clan with the acting player as owner. A player already in a
// clan cannot found another.
func (s *ClanService) Create(ctx context.Context, actorID string, in ClanInput) (*domain.Clan, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := in.normalize(); err != nil {
		return nil, err
	}

	actor, err := s.players.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.InClan() {
		return nil, fmt.Errorf("player is already in a clan: %w", domain.ErrConflict)
	}

	taken, err := s.clans.TagTaken(ctx, in.Tag, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("clan tag %q is taken: %w", in.Tag, domain.ErrConflict)
	}

	clan, err := s.clans.Create(ctx, &domain.Clan{
		Name:         in.Name,
		Tag:          in.Tag,
		Description:  in.Description,
		Theme:        in.Theme,
		BannerURL:    in.BannerURL,
		LogoURL:      in.LogoURL,
		Requirements: in.Requirements,
	}, actorID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("clan_id", clan.ID).Str("tag", clan.Tag).Str("owner_id", actorID).Msg("clan created")
	return clan, nil
}

// Get loads the clan with its roster. Member presence is filled from Steam
// when lookups are enabled; a failed lookup leaves it empty.
func (s *ClanService) Get(ctx context.Context, clanID string) (*ClanDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	clan, err := s.clans.Get(ctx, clanID)
	if err != nil {
		return nil, err
	}
	members, err := s.clans.Members(ctx, clanID)
	if err != nil {
		return nil, err
	}

	s.fillPresence(ctx, members)
	return &ClanDetails{Clan: clan, Members: members}, nil
}

func (s *ClanService) fillPresence(ctx context.Context, members []domain.ClanMember) {
	if s.steam == nil || !s.steam.Enabled() || len(members) == 0 {
		return
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		if m.Player != nil {
			ids = append(ids, m.Player.SteamID)
		}
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	summaries, err := s.steam.GetPlayerSummaries(apiCtx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Int("members", len(ids)).Msg("steam presence lookup failed")
		return
	}

	for i := range members {
		if members[i].Player == nil {
			continue
		}
		if summary, ok := summaries[members[i].Player.SteamID]; ok {
			members[i].Presence = string(summary.Presence())
		}
	}
}

func (s *ClanService) List(ctx context.Context, limit, offset int) ([]domain.Clan, error) {
	if limit <= 0 || limit > constants.LeaderboardMaxLimit {
		limit = constants.LeaderboardMaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.clans.List(ctx, limit, offset)
}

// Update replaces the clan's settings. Owner only.
func (s *ClanService) Update(ctx context.Context, actorID, clanID string, in ClanInput) (*domain.Clan, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := in.normalize(); err != nil {
		return nil, err
	}

	clan, err := s.requireOwner(ctx, clanID, actorID)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(in.Tag, clan.Tag) {
		taken, err := s.clans.TagTaken(ctx, in.Tag, clan.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("clan tag %q is taken: %w", in.Tag, domain.ErrConflict)
		}
	}

	clan.Name = in.Name
	clan.Tag = in.Tag
	clan.Description = in.Description
	clan.Theme = in.Theme
	clan.BannerURL = in.BannerURL
	clan.LogoURL = in.LogoURL
	clan.Requirements = in.Requirements

	if err := s.clans.Update(ctx, clan); err != nil {
		return nil, err
	}

	s.logger.Info().Str("clan_id", clan.ID).Msg("clan updated")
	return s.clans.Get(ctx, clan.ID)
}

func (s *ClanService) Delete(ctx context.Context, actorID, clanID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := s.requireOwner(ctx, clanID, actorID); err != nil {
		return err
	}
	if err := s.clans.Delete(ctx, clanID); err != nil {
		return err
	}

	s.logger.Info().Str("clan_id", clanID).Str("actor_id", actorID).Msg("clan deleted")
	return nil
}

// Kick removes a member. Owner only, and the owner cannot be kicked.
func (s *ClanService) Kick(ctx context.Context, actorID, clanID, targetID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	clan, err := s.requireOwner(ctx, clanID, actorID)
	if err != nil {
		return err
	}
	if targetID == clan.OwnerID {
		return fmt.Errorf("the owner cannot be kicked: %w", domain.ErrInvalidState)
	}
	if err := s.clans.RemoveMember(ctx, clanID, targetID); err != nil {
		return err
	}

	s.logger.Info().Str("clan_id", clanID).Str("player_id", targetID).Msg("member kicked")
	return nil
}

// Leave removes the acting player from the clan. An owner has to hand over
// the clan first.
func (s *ClanService) Leave(ctx context.Context, actorID, clanID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	member, err := s.clans.GetMember(ctx, clanID, actorID)
	if err != nil {
		return err
	}
	if member.Role == domain.RoleOwner {
		return fmt.Errorf("owner must transfer ownership before leaving: %w", domain.ErrInvalidState)
	}
	if err := s.clans.RemoveMember(ctx, clanID, actorID); err != nil {
		return err
	}

	s.logger.Info().Str("clan_id", clanID).Str("player_id", actorID).Msg("member left")
	return nil
}

func (s *ClanService) TransferOwnership(ctx context.Context, actorID, clanID, targetID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := s.requireOwner(ctx, clanID, actorID); err != nil {
		return err
	}
	if targetID == actorID {
		return fmt.Errorf("already the owner: %w", domain.ErrInvalidInput)
	}
	if _, err := s.clans.GetMember(ctx, clanID, targetID); err != nil {
		return err
	}
	return s.clans.TransferOwnership(ctx, clanID, actorID, targetID)
}

func (s *ClanService) requireOwner(ctx context.Context, clanID, actorID string) (*domain.Clan, error) {
	clan, err := s.clans.Get(ctx, clanID)
	if err != nil {
		return nil, err
	}
	if clan.OwnerID != actorID {
		return nil, fmt.Errorf("only the clan owner may do this: %w", domain.ErrForbidden)
	}
	return clan, nil
}
