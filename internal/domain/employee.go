package domain

type Employee struct {
	ID         int64   `json:"id"`
	NationalID string  `json:"nationalId"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	BookingIDs []int64 `json:"bookingIds"`
}

type EmployeePatch struct {
	NationalID *string `json:"nationalId"`
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
}
