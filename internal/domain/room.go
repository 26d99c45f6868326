package domain

type Room struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type" validate:"required"`
	Available   bool    `json:"available"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	BookingIDs  []int64 `json:"bookingIds"` // inverse side of Booking.RoomIDs, read-only
}

type RoomPatch struct {
	Type        *string  `json:"type"`
	Available   *bool    `json:"available"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
}
