package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/internal/storage"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

// Ledger owns the daily UserPoints aggregate. The day rollover is a load-time
// check: whenever the held date differs from today, the aggregate is replaced
// with a fresh zero-valued one. There is no background timer.
type Ledger struct {
	mu      sync.Mutex
	points  *domain.UserPoints
	storage storage.Storage
	logger  *slog.Logger
	now     func() time.Time
}

func NewLedger(ctx context.Context, st storage.Storage, logger *slog.Logger) (*Ledger, error) {
	l := &Ledger{
		storage: st,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}

	points, err := st.LoadUserPoints(ctx)
	if err != nil {
		return nil, e.Wrap("service.NewLedger", err)
	}
	l.points = points
	return l, nil
}

func (l *Ledger) today() string {
	return l.now().Format("2006-01-02")
}

// ensureToday must be called with the mutex held.
func (l *Ledger) ensureToday() {
	today := l.today()
	if l.points == nil || l.points.Date != today {
		if l.points != nil && l.points.Date != "" {
			l.logger.Info("daily points reset",
				slog.String("stored_date", l.points.Date),
				slog.String("today", today),
			)
		}
		l.points = domain.NewUserPoints(today)
	}
}

// Credit records one completed action under the ledger rules and persists the
// updated aggregate.
func (l *Ledger) Credit(ctx context.Context, action domain.CompletedAction) (domain.UserPoints, error) {
	const op = "service.Ledger.Credit"

	if err := action.Validate(); err != nil {
		return domain.UserPoints{}, e.Wrap(op, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.ensureToday()
	l.points.Credit(action)

	if err := l.points.Validate(); err != nil {
		return domain.UserPoints{}, e.Wrap(op, err)
	}
	if err := l.storage.SaveUserPoints(ctx, *l.points); err != nil {
		return domain.UserPoints{}, e.Wrap(op, err)
	}
	return l.snapshot(), nil
}

func (l *Ledger) Today(ctx context.Context) (domain.UserPoints, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ensureToday()
	return l.snapshot(), nil
}

func (l *Ledger) Reset(ctx context.Context) (domain.UserPoints, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.points = domain.NewUserPoints(l.today())
	if err := l.storage.SaveUserPoints(ctx, *l.points); err != nil {
		return domain.UserPoints{}, e.Wrap("service.Ledger.Reset", err)
	}
	return l.snapshot(), nil
}

// forget drops the in-memory aggregate without touching storage. Used by the
// global reset, which wipes storage separately.
func (l *Ledger) forget() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.points = domain.NewUserPoints(l.today())
}

// snapshot must be called with the mutex held.
func (l *Ledger) snapshot() domain.UserPoints {
	out := *l.points
	out.Actions = make([]domain.CompletedAction, len(l.points.Actions))
	copy(out.Actions, l.points.Actions)
	return out
}
