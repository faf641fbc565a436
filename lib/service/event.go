package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"github.com/wallcal/wallcal.go/db/models"
)

// Event types pushed to live-update subscribers.
const (
	EventTypeCreated = "event-created"
	EventTypeUpdated = "event-updated"
	EventTypeDeleted = "event-deleted"
)

// EventWithOwner is an event row joined with its owner's display name,
// the shape every read endpoint and broadcast payload uses.
type EventWithOwner struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Details  string `json:"details"`
	Username string `json:"username"`
}

// ListEvents returns every event joined with its owner's name, ordered by
// date with the event id as tie breaker.
func (svc *WallcalService) ListEvents(ctx context.Context) ([]EventWithOwner, error) {
	events := []EventWithOwner{}

	err := svc.DB.NewSelect().
		TableExpr("events").
		ColumnExpr("events.id, events.user_id, events.date, events.title, events.details").
		ColumnExpr("users.name AS username").
		Join("JOIN users ON users.id = events.user_id").
		OrderExpr("events.date ASC, events.id ASC").
		Scan(ctx, &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent inserts a new event owned by the caller and broadcasts it
// once the insert has committed.
func (svc *WallcalService) CreateEvent(ctx context.Context, owner *models.User, date, title, details string) (*EventWithOwner, error) {
	date = strings.TrimSpace(date)
	title = strings.TrimSpace(title)
	details = strings.TrimSpace(details)
	if date == "" || title == "" {
		return nil, ErrInvalidEvent
	}

	event := &models.Event{
		UserID:  owner.ID,
		Date:    date,
		Title:   title,
		Details: details,
	}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(event).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	enriched := enrich(event, owner)
	svc.EventPubSub.Publish(EventTypeCreated, enriched)
	return enriched, nil
}

// UpdateEvent overwrites date, title and details of an event the caller
// owns. Id and owner are immutable.
func (svc *WallcalService) UpdateEvent(ctx context.Context, eventId int64, caller *models.User, date, title, details string) (*EventWithOwner, error) {
	date = strings.TrimSpace(date)
	title = strings.TrimSpace(title)
	details = strings.TrimSpace(details)
	if date == "" || title == "" {
		return nil, ErrInvalidEvent
	}

	event := &models.Event{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := svc.fetchOwnedEvent(ctx, tx, event, eventId, caller.ID); err != nil {
			return err
		}
		event.Date = date
		event.Title = title
		event.Details = details
		_, err := tx.NewUpdate().
			Model(event).
			Column("date", "title", "details").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	enriched := enrich(event, caller)
	svc.EventPubSub.Publish(EventTypeUpdated, enriched)
	return enriched, nil
}

// DeleteEvent removes an event the caller owns and broadcasts the id.
func (svc *WallcalService) DeleteEvent(ctx context.Context, eventId int64, caller *models.User) error {
	event := &models.Event{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := svc.fetchOwnedEvent(ctx, tx, event, eventId, caller.ID); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model(event).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}

	svc.EventPubSub.Publish(EventTypeDeleted, map[string]int64{"id": eventId})
	return nil
}

// fetchOwnedEvent loads an event inside the mutation transaction and
// checks existence before ownership, so an absent event is reported as
// not-found rather than forbidden.
func (svc *WallcalService) fetchOwnedEvent(ctx context.Context, tx bun.Tx, event *models.Event, eventId, callerId int64) error {
	err := tx.NewSelect().Model(event).Where("id = ?", eventId).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}
	if event.UserID != callerId {
		return ErrNotEventOwner
	}
	return nil
}

func enrich(event *models.Event, owner *models.User) *EventWithOwner {
	return &EventWithOwner{
		ID:       event.ID,
		UserID:   event.UserID,
		Date:     event.Date,
		Title:    event.Title,
		Details:  event.Details,
		Username: owner.Name,
	}
}
