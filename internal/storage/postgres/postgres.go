// Package postgres persists snapshots in Postgres. Each Save replaces the
// whole collection inside one transaction, keeping the same replace-the-file
// semantics as the JSON backend.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zorofrizzy/breatheBack/internal/config"
	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

type Storage struct {
	Pool   *pgxpool.Pool
	logger *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	pg := cfg.Storage.Postgres
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.User, pg.Password, pg.Database, pg.SSLMode,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, e.Wrap("storage.pg.New.ParseConfig", err)
	}
	poolCfg.MaxConns = pg.MaxConns
	poolCfg.MinConns = pg.MinConns
	poolCfg.MaxConnLifetime = pg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, e.Wrap("storage.pg.New.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, e.Wrap("storage.pg.New.Ping", err)
	}

	s := &Storage{Pool: pool, logger: logger}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("Connected to Postgres successfully")
	return s, nil
}

func NewWithPool(pool *pgxpool.Pool, logger *slog.Logger) (*Storage, error) {
	s := &Storage{Pool: pool, logger: logger}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) Close() {
	s.Pool.Close()
}

func (s *Storage) ensureSchema(ctx context.Context) error {
	const op = "storage.pg.ensureSchema"

	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS zones (
			id            text PRIMARY KEY,
			north         double precision NOT NULL,
			south         double precision NOT NULL,
			east          double precision NOT NULL,
			west          double precision NOT NULL,
			vape_debt     double precision NOT NULL CHECK (vape_debt >= 0),
			vape_restore  double precision NOT NULL CHECK (vape_restore >= 0),
			smoke_debt    double precision NOT NULL CHECK (smoke_debt >= 0),
			smoke_restore double precision NOT NULL CHECK (smoke_restore >= 0),
			last_updated  timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS user_points (
			date              text PRIMARY KEY,
			total_points      integer NOT NULL CHECK (total_points >= 0),
			actions_completed integer NOT NULL CHECK (actions_completed >= 0),
			vape_points       integer NOT NULL CHECK (vape_points >= 0),
			smoke_points      integer NOT NULL CHECK (smoke_points >= 0),
			actions           jsonb NOT NULL
		);

		CREATE TABLE IF NOT EXISTS community_events (
			id           uuid PRIMARY KEY,
			name         text NOT NULL,
			location     text NOT NULL,
			date_time    timestamptz NOT NULL,
			duration     integer NOT NULL CHECK (duration > 0),
			type_focus   text NOT NULL,
			description  text NOT NULL,
			created_at   timestamptz NOT NULL,
			context_hint text
		);
	`)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (s *Storage) SaveZones(ctx context.Context, zones []domain.Zone) error {
	const op = "storage.pg.SaveZones"

	for i := range zones {
		if err := zones[i].Validate(); err != nil {
			return e.Wrap(op, err)
		}
	}

	return s.inTx(ctx, op, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM zones`); err != nil {
			return err
		}
		for i := range zones {
			z := &zones[i]
			_, err := tx.Exec(ctx, `
				INSERT INTO zones (id, north, south, east, west,
					vape_debt, vape_restore, smoke_debt, smoke_restore, last_updated)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`,
				z.ID, z.Bounds.North, z.Bounds.South, z.Bounds.East, z.Bounds.West,
				z.VapeDebt, z.VapeRestore, z.SmokeDebt, z.SmokeRestore, z.LastUpdated,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) LoadZones(ctx context.Context) ([]domain.Zone, error) {
	const op = "storage.pg.LoadZones"

	rows, err := s.Pool.Query(ctx, `
		SELECT id, north, south, east, west,
		       vape_debt, vape_restore, smoke_debt, smoke_restore, last_updated
		FROM zones
	`)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	zones := []domain.Zone{}
	for rows.Next() {
		var z domain.Zone
		if err := rows.Scan(
			&z.ID, &z.Bounds.North, &z.Bounds.South, &z.Bounds.East, &z.Bounds.West,
			&z.VapeDebt, &z.VapeRestore, &z.SmokeDebt, &z.SmokeRestore, &z.LastUpdated,
		); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return zones, nil
}

func (s *Storage) SaveUserPoints(ctx context.Context, points domain.UserPoints) error {
	const op = "storage.pg.SaveUserPoints"

	if err := points.Validate(); err != nil {
		return e.Wrap(op, err)
	}

	return s.inTx(ctx, op, func(tx pgx.Tx) error {
		// singleton snapshot: only the current aggregate is kept
		if _, err := tx.Exec(ctx, `DELETE FROM user_points`); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO user_points (date, total_points, actions_completed, vape_points, smoke_points, actions)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			points.Date, points.TotalPoints, points.ActionsCompleted,
			points.VapePoints, points.SmokePoints, points.Actions,
		)
		return err
	})
}

func (s *Storage) LoadUserPoints(ctx context.Context) (*domain.UserPoints, error) {
	const op = "storage.pg.LoadUserPoints"

	var p domain.UserPoints
	err := s.Pool.QueryRow(ctx, `
		SELECT date, total_points, actions_completed, vape_points, smoke_points, actions
		FROM user_points
		LIMIT 1
	`).Scan(&p.Date, &p.TotalPoints, &p.ActionsCompleted, &p.VapePoints, &p.SmokePoints, &p.Actions)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, e.WrapError(ctx, op, err)
	}
	return &p, nil
}

func (s *Storage) SaveEvents(ctx context.Context, events []domain.CommunityEvent) error {
	const op = "storage.pg.SaveEvents"

	for i := range events {
		if err := events[i].Validate(); err != nil {
			return e.Wrap(op, err)
		}
	}

	return s.inTx(ctx, op, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM community_events`); err != nil {
			return err
		}
		for i := range events {
			ev := &events[i]
			var hint *string
			if ev.ContextHint != "" {
				h := string(ev.ContextHint)
				hint = &h
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO community_events (id, name, location, date_time, duration, type_focus, description, created_at, context_hint)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`,
				ev.ID, ev.Name, ev.Location, ev.DateTime, ev.Duration,
				string(ev.TypeFocus), ev.Description, ev.CreatedAt, hint,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) LoadEvents(ctx context.Context) ([]domain.CommunityEvent, error) {
	const op = "storage.pg.LoadEvents"

	rows, err := s.Pool.Query(ctx, `
		SELECT id, name, location, date_time, duration, type_focus, description, created_at, context_hint
		FROM community_events
	`)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	events := []domain.CommunityEvent{}
	for rows.Next() {
		var ev domain.CommunityEvent
		var typeFocus string
		var hint *string
		if err := rows.Scan(
			&ev.ID, &ev.Name, &ev.Location, &ev.DateTime, &ev.Duration,
			&typeFocus, &ev.Description, &ev.CreatedAt, &hint,
		); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		ev.TypeFocus = domain.ActionType(typeFocus)
		if hint != nil {
			ev.ContextHint = domain.ActionContext(*hint)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return events, nil
}

func (s *Storage) Reset(ctx context.Context) error {
	const op = "storage.pg.Reset"

	return s.inTx(ctx, op, func(tx pgx.Tx) error {
		for _, table := range []string{"zones", "user_points", "community_events"} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) inTx(ctx context.Context, op string, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		s.logger.Error("db tx failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}
