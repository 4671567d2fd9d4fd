package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ars145/ZarubaProfile-sub000/internal/db"
	"github.com/Ars145/ZarubaProfile-sub000/internal/domain"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type ApplicationRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewApplicationRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ApplicationRepository {
	return &ApplicationRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toDomainApplication(a db.ClanApplication) (*domain.ClanApplication, error) {
	app := &domain.ClanApplication{
		ID:            a.ID,
		ClanID:        a.ClanID,
		PlayerID:      a.PlayerID,
		PlayerName:    a.PlayerName,
		PlayerSteamID: a.PlayerSteamID,
		Message:       a.Message,
		Status:        domain.ApplicationStatus(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if err := json.Unmarshal(a.StatsSnapshot, &app.StatsSnapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot of application %s: %w", a.ID, err)
	}
	return app, nil
}

func toDomainApplications(rows []db.ClanApplication) ([]domain.ClanApplication, error) {
	result := make([]domain.ClanApplication, 0, len(rows))
	for _, row := range rows {
		app, err := toDomainApplication(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *app)
	}
	return result, nil
}

// Create stores a new pending application. ID and timestamps are assigned here.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.ClanApplication) (*domain.ClanApplication, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application id: %w", err)
	}
	snapshot, err := json.Marshal(app.StatsSnapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	now := time.Now().UTC()
	err = r.queries.CreateApplication(ctx, db.CreateApplicationParams{
		ID:            id,
		ClanID:        app.ClanID,
		PlayerID:      app.PlayerID,
		PlayerName:    app.PlayerName,
		PlayerSteamID: app.PlayerSteamID,
		Message:       app.Message,
		Status:        string(domain.ApplicationPending),
		StatsSnapshot: string(snapshot),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, mapError(err, "failed to create application")
	}

	created := *app
	created.ID = id
	created.Status = domain.ApplicationPending
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *ApplicationRepository) Get(ctx context.Context, id string) (*domain.ClanApplication, error) {
	a, err := r.queries.GetApplication(ctx, id)
	if err != nil {
		return nil, mapError(err, "failed to get application")
	}
	return toDomainApplication(a)
}

func (r *ApplicationRepository) ListByClan(ctx context.Context, clanID string, status domain.ApplicationStatus) ([]domain.ClanApplication, error) {
	rows, err := r.queries.ListApplicationsByClan(ctx, db.ListApplicationsByClanParams{
		ClanID: clanID,
		Status: string(status),
	})
	if err != nil {
		return nil, mapError(err, "failed to list clan applications")
	}
	return toDomainApplications(rows)
}

func (r *ApplicationRepository) ListByPlayer(ctx context.Context, playerID string) ([]domain.ClanApplication, error) {
	rows, err := r.queries.ListApplicationsByPlayer(ctx, playerID)
	if err != nil {
		return nil, mapError(err, "failed to list player applications")
	}
	return toDomainApplications(rows)
}

func (r *ApplicationRepository) HasPending(ctx context.Context, clanID, playerID string) (bool, error) {
	pending, err := r.queries.HasPendingApplication(ctx, db.HasPendingApplicationParams{
		ClanID:   clanID,
		PlayerID: playerID,
	})
	if err != nil {
		return false, mapError(err, "failed to check pending application")
	}
	return pending, nil
}

// Resolve moves a pending application to status. It fails with
// ErrInvalidState when the application is no longer pending.
func (r *ApplicationRepository) Resolve(ctx context.Context, id string, status domain.ApplicationStatus) error {
	return resolveApplication(ctx, r.queries, id, status, time.Now().UTC())
}

func resolveApplication(ctx context.Context, q *db.Queries, id string, status domain.ApplicationStatus, at time.Time) error {
	n, err := q.UpdateApplicationStatus(ctx, db.UpdateApplicationStatusParams{
		Status:     string(status),
		UpdatedAt:  at,
		ID:         id,
		FromStatus: string(domain.ApplicationPending),
	})
	if err != nil {
		return mapError(err, "failed to update application status")
	}
	if n == 0 {
		return fmt.Errorf("application %s is not pending: %w", id, domain.ErrInvalidState)
	}
	return nil
}

// Approve accepts the application, adds the applicant to the clan with the
// application's snapshot and withdraws the applicant's other pending
// applications, all in one transaction.
func (r *ApplicationRepository) Approve(ctx context.Context, app *domain.ClanApplication) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := resolveApplication(ctx, qtx, app.ID, domain.ApplicationAccepted, now); err != nil {
		return err
	}

	snapshot := app.StatsSnapshot
	if err := addMember(ctx, qtx, app.ClanID, app.PlayerID, domain.RoleMember, &snapshot, now); err != nil {
		return err
	}

	err = qtx.WithdrawOtherPendingApplications(ctx, db.WithdrawOtherPendingApplicationsParams{
		UpdatedAt: now,
		PlayerID:  app.PlayerID,
		KeepID:    app.ID,
	})
	if err != nil {
		return mapError(err, "failed to withdraw other applications")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit approval: %w", err)
	}

	r.logger.Info().
		Str("application_id", app.ID).
		Str("clan_id", app.ClanID).
		Str("player_id", app.PlayerID).
		Msg("application approved")
	return nil
}
