package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Appointment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"` // calendar day, midnight
	Timeslot  string    `json:"timeslot"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// joined from users on reads
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// Timeslots is the fixed set of bookable half-hour slots.
var Timeslots = []string{
	"10:00 AM - 10:30 AM", "10:30 AM - 11:00 AM", "11:00 AM - 11:30 AM",
	"11:30 AM - 12:00 PM", "12:00 PM - 12:30 PM", "12:30 PM - 1:00 PM",
	"2:00 PM - 2:30 PM", "2:30 PM - 3:00 PM", "3:00 PM - 3:30 PM",
	"3:30 PM - 4:00 PM", "4:00 PM - 4:30 PM", "5:00 PM - 5:30 PM",
	"5:30 PM - 6:00 PM",
}

func ValidTimeslot(s string) bool {
	for _, ts := range Timeslots {
		if s == ts {
			return true
		}
	}
	return false
}

func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusRejected
}

func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}
