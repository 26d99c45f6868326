package domain

import "slices"

// Resource is a hotel asset whose suppliers live in the remote provider
// service. Only the provider ids are stored locally.
type Resource struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Price       *float64   `json:"price" validate:"required,gte=0"`
	ProviderIDs []int64    `json:"providerIds"`
	Providers   []Provider `json:"providers,omitempty"` // transient, never persisted
}

func (r Resource) HasProvider(id int64) bool {
	return slices.Contains(r.ProviderIDs, id)
}

type Provider struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
