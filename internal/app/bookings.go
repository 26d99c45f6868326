package app

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"

	"hotel_registry/internal/domain"
)

type guestLookup interface {
	Get(ctx context.Context, id int64) (domain.Guest, error)
}

type employeeLookup interface {
	Get(ctx context.Context, id int64) (domain.Employee, error)
}

type roomLookup interface {
	Get(ctx context.Context, id int64) (domain.Room, error)
}

// BookingLedger owns bookings and their room sets. Guest, employee and room
// references are resolved through the owning registries, inside the same
// transaction as the booking write.
type BookingLedger struct {
	tx        domain.Transactor
	bookings  domain.BookingRepository
	guests    guestLookup
	employees employeeLookup
	rooms     roomLookup
}

func NewBookingLedger(tx domain.Transactor, r domain.BookingRepository, g guestLookup, e employeeLookup, rooms roomLookup) *BookingLedger {
	return &BookingLedger{tx: tx, bookings: r, guests: g, employees: e, rooms: rooms}
}

func (l *BookingLedger) List(ctx context.Context) (out []domain.Booking, err error) {
	defer func() { record("bookings", "list", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		bs, err := l.bookings.FindAll(ctx)
		if err != nil {
			return err
		}
		out = make([]domain.Booking, 0, len(bs))
		for _, b := range bs {
			b, err = l.hydrate(ctx, b)
			if err != nil {
				return err
			}
			out = append(out, b)
		}
		return nil
	})
	return out, err
}

func (l *BookingLedger) Get(ctx context.Context, id int64) (out domain.Booking, err error) {
	defer func() { record("bookings", "get", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := l.find(ctx, id)
		if err != nil {
			return err
		}
		out, err = l.hydrate(ctx, b)
		return err
	})
	return out, err
}

func (l *BookingLedger) find(ctx context.Context, id int64) (domain.Booking, error) {
	b, err := l.bookings.FindByID(ctx, id)
	if err != nil {
		return domain.Booking{}, missing(err, msgBookingNotFound)
	}
	return b, nil
}

// Create persists a new booking with an empty room set; rooms are added
// through AssignRoom.
func (l *BookingLedger) Create(ctx context.Context, b domain.Booking) (out domain.Booking, err error) {
	defer func() { record("bookings", "create", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := l.resolveRefs(ctx, &b); err != nil {
			return err
		}
		b.ID = 0
		b.RoomIDs = nil
		saved, err := l.bookings.Save(ctx, b)
		if err != nil {
			return err
		}
		out, err = l.hydrate(ctx, saved)
		return err
	})
	if err == nil {
		log.Info().Int64("booking_id", out.ID).Int64("guest_id", out.GuestRef()).
			Int64("employee_id", out.EmployeeRef()).Msg("booking created")
	}
	return out, err
}

// Update replaces the booking fields and re-validates both references. The
// room set is kept as stored.
func (l *BookingLedger) Update(ctx context.Context, id int64, b domain.Booking) (out domain.Booking, err error) {
	defer func() { record("bookings", "update", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		stored, err := l.find(ctx, id)
		if err != nil {
			return err
		}
		if err := l.resolveRefs(ctx, &b); err != nil {
			return err
		}
		b.ID = id
		b.RoomIDs = stored.RoomIDs
		saved, err := l.bookings.Save(ctx, b)
		if err != nil {
			return err
		}
		out, err = l.hydrate(ctx, saved)
		return err
	})
	return out, err
}

// Patch merges the supplied fields onto the stored booking. A reference
// without an id counts as omitted.
func (l *BookingLedger) Patch(ctx context.Context, id int64, p domain.BookingPatch) (out domain.Booking, err error) {
	defer func() { record("bookings", "patch", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := l.find(ctx, id)
		if err != nil {
			return err
		}
		if p.Guest != nil && p.Guest.ID != 0 {
			g, err := l.resolveGuest(ctx, p.Guest)
			if err != nil {
				return err
			}
			b.Guest = g
		}
		if p.Employee != nil && p.Employee.ID != 0 {
			e, err := l.resolveEmployee(ctx, p.Employee)
			if err != nil {
				return err
			}
			b.Employee = e
		}
		if p.StartDate != nil {
			b.StartDate = *p.StartDate
		}
		if p.EndDate != nil {
			b.EndDate = *p.EndDate
		}
		if p.Active != nil {
			b.Active = *p.Active
		}
		saved, err := l.bookings.Save(ctx, b)
		if err != nil {
			return err
		}
		out, err = l.hydrate(ctx, saved)
		return err
	})
	return out, err
}

// Delete removes the booking and releases its rooms.
func (l *BookingLedger) Delete(ctx context.Context, id int64) (err error) {
	defer func() { record("bookings", "delete", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := l.find(ctx, id); err != nil {
			return err
		}
		return l.bookings.DeleteByID(ctx, id)
	})
	if err == nil {
		log.Info().Int64("booking_id", id).Msg("booking deleted")
	}
	return err
}

// AssignRoom adds roomID to the booking's room set. Assigning a room twice
// is rejected, not ignored.
func (l *BookingLedger) AssignRoom(ctx context.Context, bookingID, roomID int64) (out domain.Booking, err error) {
	defer func() { record("bookings", "assign_room", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := l.find(ctx, bookingID)
		if err != nil {
			return err
		}
		if _, err := l.rooms.Get(ctx, roomID); err != nil {
			return err
		}
		if b.HasRoom(roomID) {
			return illegal("room already assigned to this booking")
		}
		b.RoomIDs = append(b.RoomIDs, roomID)
		saved, err := l.bookings.Save(ctx, b)
		if err != nil {
			return err
		}
		out, err = l.hydrate(ctx, saved)
		return err
	})
	if err == nil {
		log.Info().Int64("booking_id", bookingID).Int64("room_id", roomID).Msg("room assigned")
	}
	return out, err
}

func (l *BookingLedger) RemoveRoom(ctx context.Context, bookingID, roomID int64) (out domain.Booking, err error) {
	defer func() { record("bookings", "remove_room", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := l.find(ctx, bookingID)
		if err != nil {
			return err
		}
		if _, err := l.rooms.Get(ctx, roomID); err != nil {
			return err
		}
		if !b.HasRoom(roomID) {
			return illegal("room not assigned to this booking")
		}
		b.RoomIDs = slices.DeleteFunc(b.RoomIDs, func(id int64) bool { return id == roomID })
		saved, err := l.bookings.Save(ctx, b)
		if err != nil {
			return err
		}
		out, err = l.hydrate(ctx, saved)
		return err
	})
	if err == nil {
		log.Info().Int64("booking_id", bookingID).Int64("room_id", roomID).Msg("room released")
	}
	return out, err
}

func (l *BookingLedger) GetRoom(ctx context.Context, bookingID, roomID int64) (out domain.Room, err error) {
	defer func() { record("bookings", "get_room", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := l.find(ctx, bookingID)
		if err != nil {
			return err
		}
		if !b.HasRoom(roomID) {
			return notFound("room not found in the booking")
		}
		out, err = l.rooms.Get(ctx, roomID)
		return err
	})
	return out, err
}

func (l *BookingLedger) ListRooms(ctx context.Context, bookingID int64) (out []domain.Room, err error) {
	defer func() { record("bookings", "list_rooms", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := l.find(ctx, bookingID)
		if err != nil {
			return err
		}
		out = make([]domain.Room, 0, len(b.RoomIDs))
		for _, id := range b.RoomIDs {
			r, err := l.rooms.Get(ctx, id)
			if err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}

// ---- lookups from the inverse side ----

// ListByGuest returns the guest's bookings; a guest without bookings is
// reported as NotFound.
func (l *BookingLedger) ListByGuest(ctx context.Context, guestID int64) (out []domain.Booking, err error) {
	defer func() { record("bookings", "list_by_guest", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		g, err := l.guests.Get(ctx, guestID)
		if err != nil {
			return err
		}
		if len(g.BookingIDs) == 0 {
			return notFound("no bookings associated with the guest")
		}
		out, err = l.collect(ctx, g.BookingIDs)
		return err
	})
	return out, err
}

func (l *BookingLedger) GetForGuest(ctx context.Context, guestID, bookingID int64) (out domain.Booking, err error) {
	defer func() { record("bookings", "get_for_guest", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		g, err := l.guests.Get(ctx, guestID)
		if err != nil {
			return err
		}
		out, err = l.member(ctx, g.BookingIDs, bookingID, "booking not found for the guest")
		return err
	})
	return out, err
}

func (l *BookingLedger) GetForEmployee(ctx context.Context, employeeID, bookingID int64) (out domain.Booking, err error) {
	defer func() { record("bookings", "get_for_employee", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := l.employees.Get(ctx, employeeID)
		if err != nil {
			return err
		}
		out, err = l.member(ctx, e.BookingIDs, bookingID, "booking not found for the employee")
		return err
	})
	return out, err
}

func (l *BookingLedger) ListByRoom(ctx context.Context, roomID int64) (out []domain.Booking, err error) {
	defer func() { record("bookings", "list_by_room", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := l.rooms.Get(ctx, roomID)
		if err != nil {
			return err
		}
		out, err = l.collect(ctx, r.BookingIDs)
		return err
	})
	return out, err
}

func (l *BookingLedger) GetForRoom(ctx context.Context, roomID, bookingID int64) (out domain.Booking, err error) {
	defer func() { record("bookings", "get_for_room", err) }()
	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := l.rooms.Get(ctx, roomID)
		if err != nil {
			return err
		}
		out, err = l.member(ctx, r.BookingIDs, bookingID, "booking not found in the room")
		return err
	})
	return out, err
}

func (l *BookingLedger) member(ctx context.Context, ids []int64, bookingID int64, msg string) (domain.Booking, error) {
	if !slices.Contains(ids, bookingID) {
		return domain.Booking{}, notFound(msg)
	}
	b, err := l.find(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	return l.hydrate(ctx, b)
}

func (l *BookingLedger) collect(ctx context.Context, ids []int64) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(ids))
	for _, id := range ids {
		b, err := l.find(ctx, id)
		if err != nil {
			return nil, err
		}
		if b, err = l.hydrate(ctx, b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ---- reference resolution ----

func (l *BookingLedger) resolveRefs(ctx context.Context, b *domain.Booking) error {
	g, err := l.resolveGuest(ctx, b.Guest)
	if err != nil {
		return err
	}
	e, err := l.resolveEmployee(ctx, b.Employee)
	if err != nil {
		return err
	}
	b.Guest, b.Employee = g, e
	return nil
}

// resolveGuest swaps a shallow reference for the stored guest. A missing or
// unknown reference makes the booking itself invalid.
func (l *BookingLedger) resolveGuest(ctx context.Context, ref *domain.Guest) (*domain.Guest, error) {
	if ref == nil || ref.ID == 0 {
		return nil, illegal("the guest specified is invalid")
	}
	g, err := l.guests.Get(ctx, ref.ID)
	if ok, err := found(err); err != nil {
		return nil, err
	} else if !ok {
		return nil, illegal("the guest specified does not exist")
	}
	return &g, nil
}

func (l *BookingLedger) resolveEmployee(ctx context.Context, ref *domain.Employee) (*domain.Employee, error) {
	if ref == nil || ref.ID == 0 {
		return nil, illegal("the employee specified is invalid")
	}
	e, err := l.employees.Get(ctx, ref.ID)
	if ok, err := found(err); err != nil {
		return nil, err
	} else if !ok {
		return nil, illegal("the employee specified does not exist")
	}
	return &e, nil
}

// hydrate replaces stored shallow references with full records. References
// left dangling by a deleted guest or employee stay shallow.
func (l *BookingLedger) hydrate(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	if id := b.GuestRef(); id != 0 {
		g, err := l.guests.Get(ctx, id)
		if ok, err := found(err); err != nil {
			return domain.Booking{}, err
		} else if ok {
			b.Guest = &g
		}
	}
	if id := b.EmployeeRef(); id != 0 {
		e, err := l.employees.Get(ctx, id)
		if ok, err := found(err); err != nil {
			return domain.Booking{}, err
		} else if ok {
			b.Employee = &e
		}
	}
	return b, nil
}
