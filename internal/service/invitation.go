package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Ars145/ZarubaProfile-sub000/internal/constants"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/repository"
	"github.com/rs/zerolog"
)

type InvitationService struct {
	invitations *repository.InvitationRepository
	clans       *repository.ClanRepository
	players     *repository.PlayerRepository
	stats       *StatsService
	logger      zerolog.Logger
}

func NewInvitationService(
	invitations *repository.InvitationRepository,
	clans *repository.ClanRepository,
	players *repository.PlayerRepository,
	stats *StatsService,
	logger zerolog.Logger,
) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		clans:       clans,
		players:     players,
		stats:       stats,
		logger:      logger,
	}
}

// Invite opens an invitation from the clan owner to a player outside any
// clan. A settled invitation to the same player is reopened.
func (s *InvitationService) Invite(ctx context.Context, actorID, clanID, targetID, message string) (*domain.ClanInvitation, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > constants.ApplicationMessageMax {
		return nil, fmt.Errorf("message exceeds %d characters: %w", constants.ApplicationMessageMax, domain.ErrInvalidInput)
	}
	if targetID == actorID {
		return nil, fmt.Errorf("cannot invite yourself: %w", domain.ErrInvalidInput)
	}

	clan, err := s.clans.Get(ctx, clanID)
	if err != nil {
		return nil, err
	}
	if clan.OwnerID != actorID {
		return nil, fmt.Errorf("only the clan owner may invite: %w", domain.ErrForbidden)
	}

	target, err := s.players.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.InClan() {
		return nil, fmt.Errorf("player is already in a clan: %w", domain.ErrConflict)
	}

	inv, err := s.invitations.Open(ctx, &domain.ClanInvitation{
		ClanID:      clanID,
		PlayerID:    targetID,
		InvitedByID: actorID,
		Message:     message,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("invitation_id", inv.ID).Str("clan_id", clanID).Str("player_id", targetID).Msg("invitation sent")
	inv.Clan = clan
	return inv, nil
}

func (s *InvitationService) ListForClan(ctx context.Context, actorID, clanID, status string) ([]domain.ClanInvitation, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := domain.ParseInvitationStatus(status)
	if err != nil {
		return nil, err
	}
	clan, err := s.clans.Get(ctx, clanID)
	if err != nil {
		return nil, err
	}
	if clan.OwnerID != actorID {
		return nil, fmt.Errorf("only the clan owner may do this: %w", domain.ErrForbidden)
	}
	return s.invitations.ListByClan(ctx, clanID, st)
}

// ListMine returns the acting player's invitations with their clans attached.
func (s *InvitationService) ListMine(ctx context.Context, actorID, status string) ([]domain.ClanInvitation, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := domain.ParseInvitationStatus(status)
	if err != nil {
		return nil, err
	}
	invitations, err := s.invitations.ListByPlayer(ctx, actorID, st)
	if err != nil {
		return nil, err
	}

	for i := range invitations {
		clan, err := s.clans.Get(ctx, invitations[i].ClanID)
		if err != nil {
			return nil, err
		}
		invitations[i].Clan = clan
	}
	return invitations, nil
}

// Accept joins the invitee to the clan. The member snapshot is best effort:
// a player without stats still joins.
func (s *InvitationService) Accept(ctx context.Context, actorID, invitationID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	inv, err := s.inviteePending(ctx, actorID, invitationID)
	if err != nil {
		return err
	}

	player, err := s.players.Get(ctx, actorID)
	if err != nil {
		return err
	}
	if player.InClan() {
		return fmt.Errorf("player is already in a clan: %w", domain.ErrConflict)
	}

	snapshot, err := s.stats.Snapshot(ctx, player.SteamID)
	if err != nil {
		level := s.logger.Warn()
		if errors.Is(err, domain.ErrStatsNotFound) {
			level = s.logger.Debug()
		}
		level.Err(err).Str("player_id", actorID).Msg("joining without stats snapshot")
		snapshot = nil
	}

	return s.invitations.Accept(ctx, inv, snapshot)
}

func (s *InvitationService) Reject(ctx context.Context, actorID, invitationID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	inv, err := s.inviteePending(ctx, actorID, invitationID)
	if err != nil {
		return err
	}
	return s.invitations.Resolve(ctx, inv.ID, domain.InvitationRejected)
}

// Cancel withdraws a pending invitation. Owner only.
func (s *InvitationService) Cancel(ctx context.Context, actorID, invitationID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	inv, err := s.invitations.Get(ctx, invitationID)
	if err != nil {
		return err
	}
	clan, err := s.clans.Get(ctx, inv.ClanID)
	if err != nil {
		return err
	}
	if clan.OwnerID != actorID {
		return fmt.Errorf("only the clan owner may do this: %w", domain.ErrForbidden)
	}
	if inv.Status != domain.InvitationPending {
		return fmt.Errorf("invitation is %s: %w", inv.Status, domain.ErrInvalidState)
	}
	return s.invitations.Resolve(ctx, inv.ID, domain.InvitationCancelled)
}

func (s *InvitationService) inviteePending(ctx context.Context, actorID, invitationID string) (*domain.ClanInvitation, error) {
	inv, err := s.invitations.Get(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if inv.PlayerID != actorID {
		return nil, fmt.Errorf("not your invitation: %w", domain.ErrForbidden)
	}
	if inv.Status != domain.InvitationPending {
		return nil, fmt.Errorf("invitation is %s: %w", inv.Status, domain.ErrInvalidState)
	}
	return inv, nil
}
