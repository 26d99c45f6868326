package domain

type Guest struct {
	ID          int64   `json:"id"`
	NationalID  string  `json:"nationalId"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	GuarantorID *int64  `json:"guarantorId,omitempty"` // weak reference, never owned
	BookingIDs  []int64 `json:"bookingIds"`            // inverse side, filled on read
}

// GuestPatch is a field-level partial update; nil keeps the stored value.
type GuestPatch struct {
	NationalID  *string `json:"nationalId"`
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	GuarantorID *int64  `json:"guarantorId"`
}
