package memory

import (
	"context"
	"slices"

	"hotel_registry/internal/domain"
)

// ---- guests ----

type GuestRepo struct{ s *Store }

func (r *GuestRepo) read(st *state, g domain.Guest) domain.Guest {
	if g.GuarantorID != nil {
		id := *g.GuarantorID
		g.GuarantorID = &id
	}
	g.BookingIDs = st.bookingsWhere(func(b domain.Booking) bool { return b.GuestRef() == g.ID })
	return g
}

func (r *GuestRepo) FindByID(ctx context.Context, id int64) (out domain.Guest, err error) {
	err = r.s.run(ctx, func(st *state) error {
		g, ok := st.guests[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = r.read(st, g)
		return nil
	})
	return out, err
}

func (r *GuestRepo) FindAll(ctx context.Context) (out []domain.Guest, err error) {
	err = r.s.run(ctx, func(st *state) error {
		out = make([]domain.Guest, 0, len(st.guests))
		for _, id := range sortedKeys(st.guests) {
			out = append(out, r.read(st, st.guests[id]))
		}
		return nil
	})
	return out, err
}

func (r *GuestRepo) Save(ctx context.Context, g domain.Guest) (out domain.Guest, err error) {
	err = r.s.run(ctx, func(st *state) error {
		if g.ID == 0 {
			g.ID = st.next("guests")
		} else if st.seq["guests"] < g.ID {
			st.seq["guests"] = g.ID
		}
		if old, ok := st.guests[g.ID]; ok {
			if st.guestByNID[old.NationalID] == old.ID {
				delete(st.guestByNID, old.NationalID)
			}
			if old.GuarantorID != nil && st.guarantorOf[*old.GuarantorID] == old.ID {
				delete(st.guarantorOf, *old.GuarantorID)
			}
		}
		g.BookingIDs = nil
		if g.GuarantorID != nil {
			id := *g.GuarantorID
			g.GuarantorID = &id
			st.guarantorOf[id] = g.ID
		}
		st.guests[g.ID] = g
		st.guestByNID[g.NationalID] = g.ID
		out = r.read(st, g)
		return nil
	})
	return out, err
}

func (r *GuestRepo) DeleteByID(ctx context.Context, id int64) error {
	return r.s.run(ctx, func(st *state) error {
		g, ok := st.guests[id]
		if !ok {
			return domain.ErrNotFound
		}
		if st.guestByNID[g.NationalID] == id {
			delete(st.guestByNID, g.NationalID)
		}
		if g.GuarantorID != nil && st.guarantorOf[*g.GuarantorID] == id {
			delete(st.guarantorOf, *g.GuarantorID)
		}
		delete(st.guests, id)
		return nil
	})
}

func (r *GuestRepo) FindByNationalID(ctx context.Context, nationalID string) (out domain.Guest, err error) {
	err = r.s.run(ctx, func(st *state) error {
		id, ok := st.guestByNID[nationalID]
		if !ok {
			return domain.ErrNotFound
		}
		out = r.read(st, st.guests[id])
		return nil
	})
	return out, err
}

func (r *GuestRepo) FindByGuarantor(ctx context.Context, guarantorID int64) (out domain.Guest, err error) {
	err = r.s.run(ctx, func(st *state) error {
		id, ok := st.guarantorOf[guarantorID]
		if !ok {
			return domain.ErrNotFound
		}
		out = r.read(st, st.guests[id])
		return nil
	})
	return out, err
}

// ---- employees ----

type EmployeeRepo struct{ s *Store }

func (r *EmployeeRepo) read(st *state, e domain.Employee) domain.Employee {
	e.BookingIDs = st.bookingsWhere(func(b domain.Booking) bool { return b.EmployeeRef() == e.ID })
	return e
}

func (r *EmployeeRepo) FindByID(ctx context.Context, id int64) (out domain.Employee, err error) {
	err = r.s.run(ctx, func(st *state) error {
		e, ok := st.employees[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = r.read(st, e)
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) FindAll(ctx context.Context) (out []domain.Employee, err error) {
	err = r.s.run(ctx, func(st *state) error {
		out = make([]domain.Employee, 0, len(st.employees))
		for _, id := range sortedKeys(st.employees) {
			out = append(out, r.read(st, st.employees[id]))
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) Save(ctx context.Context, e domain.Employee) (out domain.Employee, err error) {
	err = r.s.run(ctx, func(st *state) error {
		if e.ID == 0 {
			e.ID = st.next("employees")
		} else if st.seq["employees"] < e.ID {
			st.seq["employees"] = e.ID
		}
		if old, ok := st.employees[e.ID]; ok && st.employeeByNID[old.NationalID] == old.ID {
			delete(st.employeeByNID, old.NationalID)
		}
		e.BookingIDs = nil
		st.employees[e.ID] = e
		st.employeeByNID[e.NationalID] = e.ID
		out = r.read(st, e)
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) DeleteByID(ctx context.Context, id int64) error {
	return r.s.run(ctx, func(st *state) error {
		e, ok := st.employees[id]
		if !ok {
			return domain.ErrNotFound
		}
		if st.employeeByNID[e.NationalID] == id {
			delete(st.employeeByNID, e.NationalID)
		}
		delete(st.employees, id)
		return nil
	})
}

func (r *EmployeeRepo) FindByNationalID(ctx context.Context, nationalID string) (out domain.Employee, err error) {
	err = r.s.run(ctx, func(st *state) error {
		id, ok := st.employeeByNID[nationalID]
		if !ok {
			return domain.ErrNotFound
		}
		out = r.read(st, st.employees[id])
		return nil
	})
	return out, err
}

// ---- rooms ----

type RoomRepo struct{ s *Store }

func (r *RoomRepo) read(st *state, rm domain.Room) domain.Room {
	rm.BookingIDs = st.bookingsWhere(func(b domain.Booking) bool { return b.HasRoom(rm.ID) })
	return rm
}

func (r *RoomRepo) FindByID(ctx context.Context, id int64) (out domain.Room, err error) {
	err = r.s.run(ctx, func(st *state) error {
		rm, ok := st.rooms[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = r.read(st, rm)
		return nil
	})
	return out, err
}

func (r *RoomRepo) FindAll(ctx context.Context) (out []domain.Room, err error) {
	err = r.s.run(ctx, func(st *state) error {
		out = make([]domain.Room, 0, len(st.rooms))
		for _, id := range sortedKeys(st.rooms) {
			out = append(out, r.read(st, st.rooms[id]))
		}
		return nil
	})
	return out, err
}

// Save ignores rm.BookingIDs; the booking side owns the association.
func (r *RoomRepo) Save(ctx context.Context, rm domain.Room) (out domain.Room, err error) {
	err = r.s.run(ctx, func(st *state) error {
		if rm.ID == 0 {
			rm.ID = st.next("rooms")
		} else if st.seq["rooms"] < rm.ID {
			st.seq["rooms"] = rm.ID
		}
		rm.BookingIDs = nil
		st.rooms[rm.ID] = rm
		out = r.read(st, rm)
		return nil
	})
	return out, err
}

func (r *RoomRepo) DeleteByID(ctx context.Context, id int64) error {
	return r.s.run(ctx, func(st *state) error {
		if _, ok := st.rooms[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.rooms, id)
		return nil
	})
}

// ---- bookings ----

type BookingRepo struct{ s *Store }

func shallowBooking(b domain.Booking) domain.Booking {
	if b.Guest != nil {
		b.Guest = &domain.Guest{ID: b.Guest.ID}
	}
	if b.Employee != nil {
		b.Employee = &domain.Employee{ID: b.Employee.ID}
	}
	b.RoomIDs = append([]int64{}, b.RoomIDs...)
	return b
}

func (r *BookingRepo) FindByID(ctx context.Context, id int64) (out domain.Booking, err error) {
	err = r.s.run(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = shallowBooking(b)
		return nil
	})
	return out, err
}

func (r *BookingRepo) FindAll(ctx context.Context) (out []domain.Booking, err error) {
	err = r.s.run(ctx, func(st *state) error {
		out = make([]domain.Booking, 0, len(st.bookings))
		for _, id := range sortedKeys(st.bookings) {
			out = append(out, shallowBooking(st.bookings[id]))
		}
		return nil
	})
	return out, err
}

func (r *BookingRepo) Save(ctx context.Context, b domain.Booking) (out domain.Booking, err error) {
	err = r.s.run(ctx, func(st *state) error {
		if b.ID == 0 {
			b.ID = st.next("bookings")
		} else if st.seq["bookings"] < b.ID {
			st.seq["bookings"] = b.ID
		}
		b = shallowBooking(b)
		st.bookings[b.ID] = b
		out = shallowBooking(b)
		return nil
	})
	return out, err
}

func (r *BookingRepo) DeleteByID(ctx context.Context, id int64) error {
	return r.s.run(ctx, func(st *state) error {
		if _, ok := st.bookings[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.bookings, id)
		return nil
	})
}

// ---- resources ----

type ResourceRepo struct{ s *Store }

func copyResource(res domain.Resource) domain.Resource {
	res.ProviderIDs = append([]int64{}, res.ProviderIDs...)
	if res.Price != nil {
		p := *res.Price
		res.Price = &p
	}
	res.Providers = nil
	return res
}

func (r *ResourceRepo) FindByID(ctx context.Context, id int64) (out domain.Resource, err error) {
	err = r.s.run(ctx, func(st *state) error {
		res, ok := st.resources[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = copyResource(res)
		return nil
	})
	return out, err
}

func (r *ResourceRepo) FindAll(ctx context.Context) (out []domain.Resource, err error) {
	err = r.s.run(ctx, func(st *state) error {
		out = make([]domain.Resource, 0, len(st.resources))
		for _, id := range sortedKeys(st.resources) {
			out = append(out, copyResource(st.resources[id]))
		}
		return nil
	})
	return out, err
}

func (r *ResourceRepo) Save(ctx context.Context, res domain.Resource) (out domain.Resource, err error) {
	err = r.s.run(ctx, func(st *state) error {
		if res.ID == 0 {
			res.ID = st.next("resources")
		} else if st.seq["resources"] < res.ID {
			st.seq["resources"] = res.ID
		}
		res = copyResource(res)
		st.resources[res.ID] = res
		out = copyResource(res)
		return nil
	})
	return out, err
}

func (r *ResourceRepo) DeleteByID(ctx context.Context, id int64) error {
	return r.s.run(ctx, func(st *state) error {
		if _, ok := st.resources[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.resources, id)
		return nil
	})
}

func (r *ResourceRepo) DeleteProviderLinks(ctx context.Context, providerID int64) error {
	return r.s.run(ctx, func(st *state) error {
		for id, res := range st.resources {
			if !res.HasProvider(providerID) {
				continue
			}
			res = copyResource(res)
			res.ProviderIDs = slices.DeleteFunc(res.ProviderIDs, func(p int64) bool { return p == providerID })
			st.resources[id] = res
		}
		return nil
	})
}
