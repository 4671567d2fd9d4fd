package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Ars145/ZarubaProfile-sub000/internal/constants"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	"github.com/Ars145/ZarubaProfile-sub000/internal/repository"
	"github.com/rs/zerolog"
)

type ApplicationService struct {
	applications *repository.ApplicationRepository
	clans        *repository.ClanRepository
	players      *repository.PlayerRepository
	stats        *StatsService
	logger       zerolog.Logger
}

func NewApplicationService(
	applications *repository.ApplicationRepository,
	clans *repository.ClanRepository,
	players *repository.PlayerRepository,
	stats *StatsService,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		clans:        clans,
		players:      players,
		stats:        stats,
		logger:       logger,
	}
}

// Apply files an application carrying a snapshot of the applicant's current
// stats. Players without stats cannot apply.
func (s *ApplicationService) Apply(ctx context.Context, actorID, clanID, message string) (*domain.ClanApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > constants.ApplicationMessageMax {
		return nil, fmt.Errorf("message exceeds %d characters: %w", constants.ApplicationMessageMax, domain.ErrInvalidInput)
	}

	player, err := s.players.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if player.InClan() {
		return nil, fmt.Errorf("player is already in a clan: %w", domain.ErrConflict)
	}

	clan, err := s.clans.Get(ctx, clanID)
	if err != nil {
		return nil, err
	}
	if !clan.IsRecruiting() {
		return nil, fmt.Errorf("clan %s is not recruiting: %w", clan.Tag, domain.ErrInvalidState)
	}

	pending, err := s.applications.HasPending(ctx, clanID, actorID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("application already pending: %w", domain.ErrConflict)
	}

	snapshot, err := s.stats.Snapshot(ctx, player.SteamID)
	if err != nil {
		return nil, err
	}

	app, err := s.applications.Create(ctx, &domain.ClanApplication{
		ClanID:        clanID,
		PlayerID:      player.ID,
		PlayerName:    player.Username,
		PlayerSteamID: player.SteamID,
		Message:       message,
		StatsSnapshot: *snapshot,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("application_id", app.ID).Str("clan_id", clanID).Str("player_id", actorID).Msg("application created")
	return app, nil
}

func (s *ApplicationService) ListForClan(ctx context.Context, actorID, clanID, status string) ([]domain.ClanApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	st, err := domain.ParseApplicationStatus(status)
	if err != nil {
		return nil, err
	}
	if err := s.requireClanOwner(ctx, clanID, actorID); err != nil {
		return nil, err
	}
	return s.applications.ListByClan(ctx, clanID, st)
}

func (s *ApplicationService) ListMine(ctx context.Context, actorID string) ([]domain.ClanApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.applications.ListByPlayer(ctx, actorID)
}

// Approve turns the applicant into a member carrying the stored snapshot.
func (s *ApplicationService) Approve(ctx context.Context, actorID, applicationID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	app, err := s.ownedPending(ctx, actorID, applicationID)
	if err != nil {
		return err
	}

	applicant, err := s.players.Get(ctx, app.PlayerID)
	if err != nil {
		return err
	}
	if applicant.InClan() {
		return fmt.Errorf("applicant already joined a clan: %w", domain.ErrConflict)
	}

	return s.applications.Approve(ctx, app)
}

func (s *ApplicationService) Reject(ctx context.Context, actorID, applicationID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	app, err := s.ownedPending(ctx, actorID, applicationID)
	if err != nil {
		return err
	}
	if err := s.applications.Resolve(ctx, app.ID, domain.ApplicationRejected); err != nil {
		return err
	}

	s.logger.Info().Str("application_id", app.ID).Msg("application rejected")
	return nil
}

// Withdraw lets the applicant take back a pending application.
func (s *ApplicationService) Withdraw(ctx context.Context, actorID, applicationID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	app, err := s.applications.Get(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.PlayerID != actorID {
		return fmt.Errorf("not your application: %w", domain.ErrForbidden)
	}
	if app.Status != domain.ApplicationPending {
		return fmt.Errorf("application is %s: %w", app.Status, domain.ErrInvalidState)
	}
	return s.applications.Resolve(ctx, app.ID, domain.ApplicationWithdrawn)
}

func (s *ApplicationService) ownedPending(ctx context.Context, actorID, applicationID string) (*domain.ClanApplication, error) {
	app, err := s.applications.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.requireClanOwner(ctx, app.ClanID, actorID); err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationPending {
		return nil, fmt.Errorf("application is %s: %w", app.Status, domain.ErrInvalidState)
	}
	return app, nil
}

func (s *ApplicationService) requireClanOwner(ctx context.Context, clanID, actorID string) error {
	clan, err := s.clans.Get(ctx, clanID)
	if err != nil {
		return err
	}
	if clan.OwnerID != actorID {
		return fmt.Errorf("only the clan owner may do this: %w", domain.ErrForbidden)
	}
	return nil
}
