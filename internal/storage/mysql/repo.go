package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"hotel_registry/internal/domain"
)

type scanner interface{ Scan(dest ...any) error }

// save runs update when the row exists, insert otherwise, and returns the id.
func (s *Store) save(ctx context.Context, table string, id int64, insert func() (sql.Result, error), update func() error) (int64, error) {
	if id != 0 {
		ok, err := s.exists(ctx, table, id)
		if err != nil {
			return 0, err
		}
		if ok {
			return id, dbErr(update())
		}
	}
	res, err := insert()
	if err != nil {
		return 0, dbErr(err)
	}
	if id != 0 {
		return id, nil
	}
	return res.LastInsertId()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// -----------------------------------------------------------------------------
// GUESTS
// -----------------------------------------------------------------------------

type GuestRepo struct{ s *Store }

func scanGuest(sc scanner) (domain.Guest, error) {
	var g domain.Guest
	var guarantor sql.NullInt64
	if err := sc.Scan(&g.ID, &g.NationalID, &g.Name, &g.Address, &g.Phone, &g.Email, &guarantor); err != nil {
		return domain.Guest{}, err
	}
	if guarantor.Valid {
		id := guarantor.Int64
		g.GuarantorID = &id
	}
	return g, nil
}

func (r *GuestRepo) one(ctx context.Context, query string, arg any) (domain.Guest, error) {
	c := r.s.conn(ctx)
	g, err := scanGuest(c.QueryRowContext(ctx, query, arg))
	if err != nil {
		return domain.Guest{}, notFound(err)
	}
	byGuest, err := pairs(ctx, c, bookingsByGuestSQL, g.ID)
	g.BookingIDs = orEmpty(byGuest[g.ID])
	return g, err
}

func (r *GuestRepo) FindByID(ctx context.Context, id int64) (domain.Guest, error) {
	return r.one(ctx, selectGuestSQL, id)
}

func (r *GuestRepo) FindByNationalID(ctx context.Context, nationalID string) (domain.Guest, error) {
	return r.one(ctx, selectGuestByNationalIDSQL, nationalID)
}

func (r *GuestRepo) FindByGuarantor(ctx context.Context, guarantorID int64) (domain.Guest, error) {
	return r.one(ctx, selectGuestByGuarantorSQL, guarantorID)
}

func (r *GuestRepo) FindAll(ctx context.Context) ([]domain.Guest, error) {
	c := r.s.conn(ctx)
	rows, err := c.QueryContext(ctx, selectGuestsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Guest{}
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	byGuest, err := pairs(ctx, c, bookingsByAllGuestsSQL)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].BookingIDs = orEmpty(byGuest[out[i].ID])
	}
	return out, nil
}

func (r *GuestRepo) Save(ctx context.Context, g domain.Guest) (domain.Guest, error) {
	c := r.s.conn(ctx)
	id, err := r.s.save(ctx, "guests", g.ID,
		func() (sql.Result, error) {
			return c.ExecContext(ctx, insertGuestSQL,
				g.ID, g.NationalID, g.Name, g.Address, g.Phone, g.Email, nullInt(g.GuarantorID))
		},
		func() error {
			_, err := c.ExecContext(ctx, updateGuestSQL,
				g.NationalID, g.Name, g.Address, g.Phone, g.Email, nullInt(g.GuarantorID), g.ID)
			return err
		})
	if err != nil {
		return domain.Guest{}, err
	}
	return r.FindByID(ctx, id)
}

func (r *GuestRepo) DeleteByID(ctx context.Context, id int64) error {
	return deleted(r.s.conn(ctx).ExecContext(ctx, deleteGuestSQL, id))
}

// -----------------------------------------------------------------------------
// EMPLOYEES
// -----------------------------------------------------------------------------

type EmployeeRepo struct{ s *Store }

func scanEmployee(sc scanner) (domain.Employee, error) {
	var e domain.Employee
	err := sc.Scan(&e.ID, &e.NationalID, &e.Name, &e.Address, &e.Phone, &e.Email)
	return e, err
}

func (r *EmployeeRepo) one(ctx context.Context, query string, arg any) (domain.Employee, error) {
	c := r.s.conn(ctx)
	e, err := scanEmployee(c.QueryRowContext(ctx, query, arg))
	if err != nil {
		return domain.Employee{}, notFound(err)
	}
	byEmployee, err := pairs(ctx, c, bookingsByEmployeeSQL, e.ID)
	e.BookingIDs = orEmpty(byEmployee[e.ID])
	return e, err
}

func (r *EmployeeRepo) FindByID(ctx context.Context, id int64) (domain.Employee, error) {
	return r.one(ctx, selectEmployeeSQL, id)
}

func (r *EmployeeRepo) FindByNationalID(ctx context.Context, nationalID string) (domain.Employee, error) {
	return r.one(ctx, selectEmployeeByNationalIDSQL, nationalID)
}

func (r *EmployeeRepo) FindAll(ctx context.Context) ([]domain.Employee, error) {
	c := r.s.conn(ctx)
	rows, err := c.QueryContext(ctx, selectEmployeesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	byEmployee, err := pairs(ctx, c, bookingsByAllEmployeesSQL)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].BookingIDs = orEmpty(byEmployee[out[i].ID])
	}
	return out, nil
}

func (r *EmployeeRepo) Save(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	c := r.s.conn(ctx)
	id, err := r.s.save(ctx, "employees", e.ID,
		func() (sql.Result, error) {
			return c.ExecContext(ctx, insertEmployeeSQL, e.ID, e.NationalID, e.Name, e.Address, e.Phone, e.Email)
		},
		func() error {
			_, err := c.ExecContext(ctx, updateEmployeeSQL, e.NationalID, e.Name, e.Address, e.Phone, e.Email, e.ID)
			return err
		})
	if err != nil {
		return domain.Employee{}, err
	}
	return r.FindByID(ctx, id)
}

func (r *EmployeeRepo) DeleteByID(ctx context.Context, id int64) error {
	return deleted(r.s.conn(ctx).ExecContext(ctx, deleteEmployeeSQL, id))
}

// -----------------------------------------------------------------------------
// ROOMS
// -----------------------------------------------------------------------------

type RoomRepo struct{ s *Store }

func scanRoom(sc scanner) (domain.Room, error) {
	var rm domain.Room
	var desc sql.NullString
	if err := sc.Scan(&rm.ID, &rm.Type, &rm.Available, &rm.Price, &desc); err != nil {
		return domain.Room{}, err
	}
	rm.Description = desc.String
	return rm, nil
}

func (r *RoomRepo) FindByID(ctx context.Context, id int64) (domain.Room, error) {
	c := r.s.conn(ctx)
	rm, err := scanRoom(c.QueryRowContext(ctx, selectRoomSQL, id))
	if err != nil {
		return domain.Room{}, notFound(err)
	}
	byRoom, err := pairs(ctx, c, bookingsByRoomSQL, id)
	rm.BookingIDs = orEmpty(byRoom[id])
	return rm, err
}

func (r *RoomRepo) FindAll(ctx context.Context) ([]domain.Room, error) {
	c := r.s.conn(ctx)
	rows, err := c.QueryContext(ctx, selectRoomsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	byRoom, err := pairs(ctx, c, bookingsByAllRoomsSQL)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].BookingIDs = orEmpty(byRoom[out[i].ID])
	}
	return out, nil
}

// Save ignores rm.BookingIDs; booking_rooms is written by BookingRepo only.
func (r *RoomRepo) Save(ctx context.Context, rm domain.Room) (domain.Room, error) {
	c := r.s.conn(ctx)
	id, err := r.s.save(ctx, "rooms", rm.ID,
		func() (sql.Result, error) {
			return c.ExecContext(ctx, insertRoomSQL, rm.ID, rm.Type, rm.Available, rm.Price, rm.Description)
		},
		func() error {
			_, err := c.ExecContext(ctx, updateRoomSQL, rm.Type, rm.Available, rm.Price, rm.Description, rm.ID)
			return err
		})
	if err != nil {
		return domain.Room{}, err
	}
	return r.FindByID(ctx, id)
}

func (r *RoomRepo) DeleteByID(ctx context.Context, id int64) error {
	return deleted(r.s.conn(ctx).ExecContext(ctx, deleteRoomSQL, id))
}

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

type BookingRepo struct{ s *Store }

func scanBooking(sc scanner) (domain.Booking, error) {
	var b domain.Booking
	var guest, employee sql.NullInt64
	if err := sc.Scan(&b.ID, &b.StartDate, &b.EndDate, &b.Active, &guest, &employee); err != nil {
		return domain.Booking{}, err
	}
	if guest.Valid {
		b.Guest = &domain.Guest{ID: guest.Int64}
	}
	if employee.Valid {
		b.Employee = &domain.Employee{ID: employee.Int64}
	}
	return b, nil
}

func (r *BookingRepo) FindByID(ctx context.Context, id int64) (domain.Booking, error) {
	c := r.s.conn(ctx)
	b, err := scanBooking(c.QueryRowContext(ctx, selectBookingSQL, id))
	if err != nil {
		return domain.Booking{}, notFound(err)
	}
	b.RoomIDs, err = ids(ctx, c, selectBookingRoomsSQL, id)
	return b, err
}

func (r *BookingRepo) FindAll(ctx context.Context) ([]domain.Booking, error) {
	c := r.s.conn(ctx)
	rows, err := c.QueryContext(ctx, selectBookingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rooms, err := pairs(ctx, c, selectAllBookingRoomsSQL)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].RoomIDs = orEmpty(rooms[out[i].ID])
	}
	return out, nil
}

// Save writes the booking row and replaces its room set.
func (r *BookingRepo) Save(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	c := r.s.conn(ctx)
	start, end := b.StartDate.UTC(), b.EndDate.UTC()
	id, err := r.s.save(ctx, "bookings", b.ID,
		func() (sql.Result, error) {
			return c.ExecContext(ctx, insertBookingSQL,
				b.ID, start, end, b.Active, refID(b.GuestRef()), refID(b.EmployeeRef()))
		},
		func() error {
			_, err := c.ExecContext(ctx, updateBookingSQL,
				start, end, b.Active, refID(b.GuestRef()), refID(b.EmployeeRef()), b.ID)
			return err
		})
	if err != nil {
		return domain.Booking{}, err
	}
	if _, err := c.ExecContext(ctx, clearBookingRoomsSQL, id); err != nil {
		return domain.Booking{}, err
	}
	if len(b.RoomIDs) > 0 {
		values := make([]string, 0, len(b.RoomIDs))
		args := make([]any, 0, len(b.RoomIDs)*2)
		for _, roomID := range b.RoomIDs {
			values = append(values, "(?,?)")
			args = append(args, id, roomID)
		}
		if _, err := c.ExecContext(ctx, insertBookingRoomsPrefix+strings.Join(values, ","), args...); err != nil {
			return domain.Booking{}, dbErr(err)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *BookingRepo) DeleteByID(ctx context.Context, id int64) error {
	return deleted(r.s.conn(ctx).ExecContext(ctx, deleteBookingSQL, id))
}

// -----------------------------------------------------------------------------
// RESOURCES
// -----------------------------------------------------------------------------

type ResourceRepo struct{ s *Store }

func scanResource(sc scanner) (domain.Resource, error) {
	var res domain.Resource
	var price float64
	if err := sc.Scan(&res.ID, &res.Name, &res.Description, &price); err != nil {
		return domain.Resource{}, err
	}
	res.Price = &price
	return res, nil
}

func (r *ResourceRepo) FindByID(ctx context.Context, id int64) (domain.Resource, error) {
	c := r.s.conn(ctx)
	res, err := scanResource(c.QueryRowContext(ctx, selectResourceSQL, id))
	if err != nil {
		return domain.Resource{}, notFound(err)
	}
	res.ProviderIDs, err = ids(ctx, c, selectResourceProvidersSQL, id)
	return res, err
}

func (r *ResourceRepo) FindAll(ctx context.Context) ([]domain.Resource, error) {
	c := r.s.conn(ctx)
	rows, err := c.QueryContext(ctx, selectResourcesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	links, err := pairs(ctx, c, selectAllResourceProvidersSQL)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].ProviderIDs = orEmpty(links[out[i].ID])
	}
	return out, nil
}

// Save writes the resource row and replaces its provider links, keeping
// their order.
func (r *ResourceRepo) Save(ctx context.Context, res domain.Resource) (domain.Resource, error) {
	c := r.s.conn(ctx)
	var price float64
	if res.Price != nil {
		price = *res.Price
	}
	id, err := r.s.save(ctx, "resources", res.ID,
		func() (sql.Result, error) {
			return c.ExecContext(ctx, insertResourceSQL, res.ID, res.Name, res.Description, price)
		},
		func() error {
			_, err := c.ExecContext(ctx, updateResourceSQL, res.Name, res.Description, price, res.ID)
			return err
		})
	if err != nil {
		return domain.Resource{}, err
	}
	if _, err := c.ExecContext(ctx, clearResourceProvidersSQL, id); err != nil {
		return domain.Resource{}, err
	}
	if len(res.ProviderIDs) > 0 {
		values := make([]string, 0, len(res.ProviderIDs))
		args := make([]any, 0, len(res.ProviderIDs)*3)
		for pos, providerID := range res.ProviderIDs {
			values = append(values, "(?,?,?)")
			args = append(args, id, providerID, pos)
		}
		if _, err := c.ExecContext(ctx, insertResourceProvidersPrefix+strings.Join(values, ","), args...); err != nil {
			return domain.Resource{}, dbErr(err)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *ResourceRepo) DeleteByID(ctx context.Context, id int64) error {
	return deleted(r.s.conn(ctx).ExecContext(ctx, deleteResourceSQL, id))
}

func (r *ResourceRepo) DeleteProviderLinks(ctx context.Context, providerID int64) error {
	_, err := r.s.conn(ctx).ExecContext(ctx, deleteProviderLinksSQL, providerID)
	return err
}
