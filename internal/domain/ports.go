package domain

import "context"

// Transactor runs fn inside a single store transaction. The transaction is
// carried on the context passed to fn; a nested WithinTx joins it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories return a bare ErrNotFound when a lookup has no row.
// Save inserts when the id is zero and returns the record with its id set.

type GuestRepository interface {
	FindByID(ctx context.Context, id int64) (Guest, error)
	FindAll(ctx context.Context) ([]Guest, error)
	Save(ctx context.Context, g Guest) (Guest, error)
	DeleteByID(ctx context.Context, id int64) error
	FindByNationalID(ctx context.Context, nationalID string) (Guest, error)
	// FindByGuarantor returns the guest that designates guarantorID.
	FindByGuarantor(ctx context.Context, guarantorID int64) (Guest, error)
}

type EmployeeRepository interface {
	FindByID(ctx context.Context, id int64) (Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	Save(ctx context.Context, e Employee) (Employee, error)
	DeleteByID(ctx context.Context, id int64) error
	FindByNationalID(ctx context.Context, nationalID string) (Employee, error)
}

type RoomRepository interface {
	FindByID(ctx context.Context, id int64) (Room, error)
	FindAll(ctx context.Context) ([]Room, error)
	Save(ctx context.Context, r Room) (Room, error)
	DeleteByID(ctx context.Context, id int64) error
}

// BookingRepository persists the booking row and its room set together.
// Guest and Employee come back as shallow {id} references.
type BookingRepository interface {
	FindByID(ctx context.Context, id int64) (Booking, error)
	FindAll(ctx context.Context) ([]Booking, error)
	Save(ctx context.Context, b Booking) (Booking, error)
	DeleteByID(ctx context.Context, id int64) error
}

type ResourceRepository interface {
	FindByID(ctx context.Context, id int64) (Resource, error)
	FindAll(ctx context.Context) ([]Resource, error)
	Save(ctx context.Context, r Resource) (Resource, error)
	DeleteByID(ctx context.Context, id int64) error
	// DeleteProviderLinks drops providerID from every resource.
	DeleteProviderLinks(ctx context.Context, providerID int64) error
}

// ProviderClient reaches the remote provider service. Failures other than
// ErrNotFound are reported wrapped in ErrCommunication.
type ProviderClient interface {
	GetProvider(ctx context.Context, id int64) (Provider, error)
	CreateProvider(ctx context.Context, p Provider) (Provider, error)
	ProvidersByIDs(ctx context.Context, ids []int64) ([]Provider, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
