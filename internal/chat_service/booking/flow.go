package booking

import (
	"context"
	"fmt"
	"strings"

	"docuchat/internal/models"
	"docuchat/pkg/logger"
)

// StateStore holds in-progress booking state per conversation, TTL-bound.
// Get returns (nil, nil) when no state exists — including after TTL
// eviction, which therefore silently restarts the flow.
type StateStore interface {
	GetBookingState(ctx context.Context, conversationID string) (*State, error)
	SetBookingState(ctx context.Context, conversationID string, state *State) error
	DeleteBookingState(ctx context.Context, conversationID string) error
}

// BookingRepository persists completed bookings.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
}

// EventSink publishes domain events. Optional, best-effort.
type EventSink interface {
	Publish(ctx context.Context, eventType string, payload map[string]interface{}) error
}

// Flow is the multi-turn form collection state machine layered on top of
// the chat pipeline. Whatever text the user supplies is stored verbatim;
// field validation is deliberately not performed here.
type Flow struct {
	states   StateStore
	bookings BookingRepository
	events   EventSink
	log      *logger.Logger
}

// NewFlow creates a new booking Flow. events may be nil.
func NewFlow(states StateStore, bookings BookingRepository, events EventSink, log *logger.Logger) *Flow {
	return &Flow{states: states, bookings: bookings, events: events, log: log}
}

// Active reports whether a booking is in progress for the conversation.
func (f *Flow) Active(ctx context.Context, conversationID string) (bool, error) {
	state, err := f.states.GetBookingState(ctx, conversationID)
	if err != nil {
		return false, err
	}
	return state != nil, nil
}

// HandleTurn advances the state machine with one user turn and returns
// the reply to show. Completing the last field deletes the state and
// persists the booking in the same turn.
func (f *Flow) HandleTurn(ctx context.Context, conversationID, text string) (string, error) {
	state, err := f.states.GetBookingState(ctx, conversationID)
	if err != nil {
		return "", err
	}

	if state == nil {
		state = NewState()
		if err := f.states.SetBookingState(ctx, conversationID, state); err != nil {
			return "", err
		}
		return "Sure, let's schedule an interview. Please provide your name.", nil
	}

	state.Set(state.Step, strings.TrimSpace(text))

	next := state.NextUnset()
	if next != FieldComplete {
		state.Step = next
		if err := f.states.SetBookingState(ctx, conversationID, state); err != nil {
			return "", err
		}
		return fmt.Sprintf("Please provide your %s for booking.", next), nil
	}

	if err := f.states.DeleteBookingState(ctx, conversationID); err != nil {
		return "", err
	}

	booking := &models.Booking{
		Name:  state.Name,
		Email: state.Email,
		Date:  state.Date,
		Time:  state.Time,
	}
	if err := f.bookings.CreateBooking(ctx, booking); err != nil {
		return "", err
	}
	f.log.Info(fmt.Sprintf("Booking %d created for conversation %s", booking.ID, conversationID))

	if f.events != nil {
		err := f.events.Publish(ctx, "booking.created", map[string]interface{}{
			"booking_id": booking.ID,
			"date":       booking.Date,
			"time":       booking.Time,
		})
		if err != nil {
			f.log.Warn(fmt.Sprintf("Failed to publish booking.created event: %v", err))
		}
	}

	return "✅ Your interview has been booked successfully!", nil
}
