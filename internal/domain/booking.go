package domain

import (
	"slices"
	"time"
)

// Booking links one guest, one employee and a set of rooms. Guest and
// Employee arrive as shallow {id} references and leave fully resolved.
type Booking struct {
	ID        int64     `json:"id"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Active    bool      `json:"active"`
	Guest     *Guest    `json:"guest"`
	Employee  *Employee `json:"employee"`
	RoomIDs   []int64   `json:"roomIds"`
}

func (b Booking) HasRoom(roomID int64) bool {
	return slices.Contains(b.RoomIDs, roomID)
}

// GuestRef returns the referenced guest id, 0 when the reference is unset.
func (b Booking) GuestRef() int64 {
	if b.Guest == nil {
		return 0
	}
	return b.Guest.ID
}

func (b Booking) EmployeeRef() int64 {
	if b.Employee == nil {
		return 0
	}
	return b.Employee.ID
}

type BookingPatch struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Active    *bool      `json:"active"`
	Guest     *Guest     `json:"guest"`
	Employee  *Employee  `json:"employee"`
}
