package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"appointment-booking-api/internal/booking"
	"appointment-booking-api/internal/model"
)

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, user_id, date, timeslot, status, notes)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at, updated_at`,
		a.ID, a.UserID, a.Date, a.Timeslot, a.Status, a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if isUniqueViolation(err) {
		// unique (date, slot_start) caught a create race
		return booking.ErrConflict
	}
	return err
}

// HasSlotConflict reports whether any appointment on the given day has a
// timeslot starting with the same token, regardless of its status.
func (s *Store) HasSlotConflict(ctx context.Context, day time.Time, slotStart string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE date = $1 AND slot_start = $2)`,
		day, slotStart,
	).Scan(&exists)
	return exists, err
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT a.id, a.user_id, a.date, a.timeslot, a.status, a.notes,
		        a.created_at, a.updated_at, u.name, u.email
		 FROM appointments a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.id = $1`, id,
	).Scan(&a.ID, &a.UserID, &a.Date, &a.Timeslot, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt, &a.UserName, &a.UserEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments
		 SET status=$1, timeslot=$2, notes=$3, updated_at=NOW()
		 WHERE id=$4`,
		a.Status, a.Timeslot, a.Notes, a.ID,
	)
	if isUniqueViolation(err) {
		// moving onto an occupied slot
		return booking.ErrConflict
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// ListAppointments returns appointments ordered by day and slot. An empty
// ownerID returns every user's appointments; a non-nil day restricts the
// result to that calendar day.
func (s *Store) ListAppointments(ctx context.Context, ownerID string, day *time.Time) ([]model.Appointment, error) {
	q := `SELECT a.id, a.user_id, a.date, a.timeslot, a.status, a.notes,
	             a.created_at, a.updated_at, u.name, u.email
	      FROM appointments a
	      JOIN users u ON u.id = a.user_id`

	var args []any
	var conds []string
	if ownerID != "" {
		args = append(args, ownerID)
		conds = append(conds, `a.user_id = $1`)
	}
	if day != nil {
		args = append(args, *day)
		if len(args) == 1 {
			conds = append(conds, `a.date = $1`)
		} else {
			conds = append(conds, `a.date = $2`)
		}
	}
	for i, c := range conds {
		if i == 0 {
			q += ` WHERE ` + c
		} else {
			q += ` AND ` + c
		}
	}
	q += ` ORDER BY a.date, a.slot_start`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Date, &a.Timeslot, &a.Status, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt, &a.UserName, &a.UserEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
