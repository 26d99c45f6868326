// Package memory is an in-process store used by tests and by the API when
// STORE_BACKEND=memory. One mutex serialises every transaction; a failed
// transaction restores the snapshot taken when it began.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"hotel_registry/internal/domain"
)

type txKey struct{}

type state struct {
	seq map[string]int64

	guests      map[int64]domain.Guest
	guestByNID  map[string]int64
	guarantorOf map[int64]int64 // guarantor id -> guest id holding the slot

	employees     map[int64]domain.Employee
	employeeByNID map[string]int64

	rooms     map[int64]domain.Room
	bookings  map[int64]domain.Booking
	resources map[int64]domain.Resource
}

func newState() state {
	return state{
		seq:           map[string]int64{},
		guests:        map[int64]domain.Guest{},
		guestByNID:    map[string]int64{},
		guarantorOf:   map[int64]int64{},
		employees:     map[int64]domain.Employee{},
		employeeByNID: map[string]int64{},
		rooms:         map[int64]domain.Room{},
		bookings:      map[int64]domain.Booking{},
		resources:     map[int64]domain.Resource{},
	}
}

// clone copies the maps; record values are copied with their slices by the
// repositories on every write, so sharing them here is safe.
func (st state) clone() state {
	return state{
		seq:           maps.Clone(st.seq),
		guests:        maps.Clone(st.guests),
		guestByNID:    maps.Clone(st.guestByNID),
		guarantorOf:   maps.Clone(st.guarantorOf),
		employees:     maps.Clone(st.employees),
		employeeByNID: maps.Clone(st.employeeByNID),
		rooms:         maps.Clone(st.rooms),
		bookings:      maps.Clone(st.bookings),
		resources:     maps.Clone(st.resources),
	}
}

type Store struct {
	mu sync.Mutex
	st state
}

func New() *Store { return &Store{st: newState()} }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// run executes fn under the store lock unless ctx already holds it.
func (s *Store) run(ctx context.Context, fn func(st *state) error) error {
	if s.inTx(ctx) {
		return fn(&s.st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.st)
}

func (st *state) next(table string) int64 {
	st.seq[table]++
	return st.seq[table]
}

func (s *Store) Guests() *GuestRepo         { return &GuestRepo{s: s} }
func (s *Store) Employees() *EmployeeRepo   { return &EmployeeRepo{s: s} }
func (s *Store) Rooms() *RoomRepo           { return &RoomRepo{s: s} }
func (s *Store) Bookings() *BookingRepo     { return &BookingRepo{s: s} }
func (s *Store) Resources() *ResourceRepo   { return &ResourceRepo{s: s} }
func (s *Store) Ping(context.Context) error { return nil }

// bookingsWhere lists the ids of bookings matching keep, in id order.
func (st *state) bookingsWhere(keep func(domain.Booking) bool) []int64 {
	ids := []int64{}
	for id, b := range st.bookings {
		if keep(b) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}
