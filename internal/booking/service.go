package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"appointment-booking-api/internal/model"
)

// Store is the persistence surface the service needs. *store.Store
// implements it; tests use an in-memory fake.
type Store interface {
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, a *model.Appointment) error
	ListAppointments(ctx context.Context, ownerID string, day *time.Time) ([]model.Appointment, error)
	HasSlotConflict(ctx context.Context, day time.Time, slotStart string) (bool, error)
}

// Notifier delivers best-effort push messages to connected clients.
type Notifier interface {
	NotifyUser(userID, message string)
	NotifyAdmins(message string)
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	UserID string
	Role   model.Role
}

type Service struct {
	store  Store
	notify Notifier
}

func NewService(st Store, n Notifier) *Service {
	return &Service{store: st, notify: n}
}

// Create books a new pending appointment for userID. The date must be
// strictly in the future and notes must be non-empty. A slot whose start
// token is already taken on that date is a conflict, regardless of the
// existing appointment's status.
func (s *Service) Create(ctx context.Context, userID string, date time.Time, timeslot, notes string) (*model.Appointment, error) {
	if !date.After(time.Now()) {
		return nil, &ValidationError{Msg: "the appointment date must be in the future"}
	}
	if strings.TrimSpace(notes) == "" {
		return nil, &ValidationError{Msg: "notes are required and cannot be empty"}
	}
	if !model.ValidTimeslot(timeslot) {
		return nil, &ValidationError{Msg: "unknown timeslot"}
	}

	taken, err := s.store.HasSlotConflict(ctx, date, SlotStart(timeslot))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	apt := &model.Appointment{
		ID:       uuid.New().String(),
		UserID:   userID,
		Date:     date,
		Timeslot: timeslot,
		Status:   model.StatusPending,
		Notes:    notes,
	}

	// the unique (date, slot_start) index is the real arbiter; a losing
	// race surfaces here as ErrConflict
	if err := s.store.CreateAppointment(ctx, apt); err != nil {
		return nil, err
	}

	// admins hear about the request only once it is durably stored
	s.notify.NotifyAdmins(fmt.Sprintf("New appointment request on %s at %s",
		apt.Date.Format("January 2, 2006"), apt.Timeslot))

	return apt, nil
}

// List returns the actor's own appointments, or every appointment when
// the actor is an admin. A non-nil day restricts results to that
// calendar day.
func (s *Service) List(ctx context.Context, actor Actor, day *time.Time) ([]model.Appointment, error) {
	owner := actor.UserID
	if actor.Role == model.RoleAdmin {
		owner = ""
	}
	return s.store.ListAppointments(ctx, owner, day)
}

// Update describes a partial appointment mutation; nil fields are left
// unchanged.
type Update struct {
	Status   *model.Status
	Timeslot *string
	Notes    *string
}

// Apply mutates the appointment per upd. Setting status=confirmed is
// admin-only; a status change notifies the owning user once the write
// has committed.
func (s *Service) Apply(ctx context.Context, actor Actor, id string, upd Update) (*model.Appointment, error) {
	apt, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		if !model.ValidStatus(*upd.Status) {
			return nil, &ValidationError{Msg: "unknown status"}
		}
		if !CanSetStatus(actor.Role, *upd.Status) {
			return nil, ErrForbidden
		}
		apt.Status = *upd.Status
	}
	if upd.Timeslot != nil {
		if !model.ValidTimeslot(*upd.Timeslot) {
			return nil, &ValidationError{Msg: "unknown timeslot"}
		}
		apt.Timeslot = *upd.Timeslot
	}
	if upd.Notes != nil && strings.TrimSpace(*upd.Notes) != "" {
		apt.Notes = *upd.Notes
	}

	if err := s.store.UpdateAppointment(ctx, apt); err != nil {
		return nil, err
	}

	if upd.Status != nil {
		s.notify.NotifyUser(apt.UserID, fmt.Sprintf("Your appointment on %s at %s has been %s.",
			apt.Date.Format("January 2, 2006"), apt.Timeslot, apt.Status))
	}

	return apt, nil
}
