package app_test

import (
	"context"
	"time"

	"hotel_registry/internal/app"
	"hotel_registry/internal/domain"
	"hotel_registry/internal/storage/memory"
)

type registries struct {
	store     *memory.Store
	guests    *app.GuestDirectory
	employees *app.EmployeeDirectory
	rooms     *app.RoomInventory
	bookings  *app.BookingLedger
}

func newRegistries() registries {
	st := memory.New()
	r := registries{
		store:     st,
		guests:    app.NewGuestDirectory(st, st.Guests()),
		employees: app.NewEmployeeDirectory(st, st.Employees()),
		rooms:     app.NewRoomInventory(st, st.Rooms()),
	}
	r.bookings = app.NewBookingLedger(st, st.Bookings(), r.guests, r.employees, r.rooms)
	return r
}

func ptr[T any](v T) *T { return &v }

var ctx = context.Background()

func day(d int) time.Time { return time.Date(2026, 7, d, 12, 0, 0, 0, time.UTC) }

func (r registries) guest(nid, name string) domain.Guest {
	g, err := r.guests.Create(ctx, domain.Guest{NationalID: nid, Name: name})
	if err != nil {
		panic(err)
	}
	return g
}

func (r registries) employee(nid, name string) domain.Employee {
	e, err := r.employees.Create(ctx, domain.Employee{NationalID: nid, Name: name})
	if err != nil {
		panic(err)
	}
	return e
}

func (r registries) room(kind string) domain.Room {
	rm, err := r.rooms.Create(ctx, domain.Room{Type: kind, Price: 60, Available: true})
	if err != nil {
		panic(err)
	}
	return rm
}

func (r registries) booking(g domain.Guest, e domain.Employee) domain.Booking {
	b, err := r.bookings.Create(ctx, domain.Booking{
		StartDate: day(1), EndDate: day(3), Active: true,
		Guest: &domain.Guest{ID: g.ID}, Employee: &domain.Employee{ID: e.ID},
	})
	if err != nil {
		panic(err)
	}
	return b
}
