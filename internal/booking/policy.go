package booking

import "appointment-booking-api/internal/model"

// CanSetStatus is the authorization policy for status transitions.
// Only admins may confirm; rejecting needs authentication only.
func CanSetStatus(actor model.Role, next model.Status) bool {
	if next == model.StatusConfirmed {
		return actor == model.RoleAdmin
	}
	return true
}
