package booking

import "strings"

// SlotStart returns the start token of a timeslot,
// e.g. "10:00 AM" from "10:00 AM - 10:30 AM".
func SlotStart(timeslot string) string {
	if i := strings.Index(timeslot, " - "); i >= 0 {
		return timeslot[:i]
	}
	return timeslot
}
