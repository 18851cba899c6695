package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zorofrizzy/breatheBack/internal/domain"
	"github.com/zorofrizzy/breatheBack/internal/storage"
	"github.com/zorofrizzy/breatheBack/pkg/e"
)

const defaultEventDescription = "We're meeting to help this area heal. No blame, just better air choices together."

// EventLog holds the append-only community event collection.
type EventLog struct {
	mu      sync.Mutex
	events  []domain.CommunityEvent
	storage storage.Storage
	logger  *slog.Logger
}

func NewEventLog(ctx context.Context, st storage.Storage, logger *slog.Logger) (*EventLog, error) {
	events, err := st.LoadEvents(ctx)
	if err != nil {
		return nil, e.Wrap("service.NewEventLog", err)
	}
	return &EventLog{
		events:  events,
		storage: st,
		logger:  logger,
	}, nil
}

// Create appends an immutable event to the collection. Events carry a general
// area description, never a venue address.
func (s *EventLog) Create(ctx context.Context, req domain.CreateEventRequest) (domain.CreateEventResponse, error) {
	const op = "service.EventLog.Create"

	description := req.Description
	if description == "" {
		description = defaultEventDescription
	}

	event := domain.CommunityEvent{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Location:    req.Location,
		DateTime:    req.DateTime,
		Duration:    req.Duration,
		TypeFocus:   req.TypeFocus,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		ContextHint: domain.ActionContext(req.ContextHint),
	}
	if err := event.Validate(); err != nil {
		return domain.CreateEventResponse{}, e.Wrap(op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if err := s.storage.SaveEvents(ctx, s.events); err != nil {
		// keep memory and storage consistent on failure
		s.events = s.events[:len(s.events)-1]
		return domain.CreateEventResponse{}, e.Wrap(op, err)
	}

	s.logger.Info("event created", slog.String("event_id", event.ID), slog.String("type_focus", string(event.TypeFocus)))

	return domain.CreateEventResponse{
		Event:   event,
		Message: "Event created successfully! Looking forward to healing together.",
	}, nil
}

// List returns events ordered by start time.
func (s *EventLog) List(ctx context.Context) ([]domain.CommunityEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CommunityEvent, len(s.events))
	copy(out, s.events)
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out, nil
}

// Clear drops all events from memory; storage cleanup belongs to the caller.
func (s *EventLog) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
