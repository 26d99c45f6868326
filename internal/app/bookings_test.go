package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_registry/internal/domain"
)

func TestBookingLedger_CreateResolvesReferences(t *testing.T) {
	r := newRegistries()
	e1 := r.employee("E1", "Marta")
	g1 := r.guest("G1", "Ana")

	b1, err := r.bookings.Create(ctx, domain.Booking{
		StartDate: day(1), EndDate: day(4), Active: true,
		Guest: &domain.Guest{ID: g1.ID}, Employee: &domain.Employee{ID: e1.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, b1.Guest)
	require.NotNil(t, b1.Employee)
	assert.Equal(t, "Ana", b1.Guest.Name)
	assert.Equal(t, "Marta", b1.Employee.Name)
	assert.Equal(t, []int64{b1.ID}, b1.Guest.BookingIDs)
	assert.Empty(t, b1.RoomIDs)

	_, err = r.bookings.Create(ctx, domain.Booking{
		Guest: &domain.Guest{ID: 9999}, Employee: &domain.Employee{ID: e1.ID},
	})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	_, err = r.bookings.Create(ctx, domain.Booking{Employee: &domain.Employee{ID: e1.ID}})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	_, err = r.bookings.Create(ctx, domain.Booking{Guest: &domain.Guest{ID: g1.ID}, Employee: &domain.Employee{}})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)
}

func TestBookingLedger_RoomSet(t *testing.T) {
	r := newRegistries()
	b1 := r.booking(r.guest("G1", "Ana"), r.employee("E1", "Marta"))
	r1 := r.room("single")

	out, err := r.bookings.AssignRoom(ctx, b1.ID, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{r1.ID}, out.RoomIDs)

	got, err := r.bookings.GetRoom(ctx, b1.ID, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, r1.ID, got.ID)
	assert.Equal(t, []int64{b1.ID}, got.BookingIDs)

	_, err = r.bookings.AssignRoom(ctx, b1.ID, r1.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)
	assert.Contains(t, err.Error(), "room already assigned to this booking")

	assert.ErrorIs(t, r.rooms.Delete(ctx, r1.ID), domain.ErrIllegalOperation)

	_, err = r.bookings.RemoveRoom(ctx, b1.ID, r1.ID)
	require.NoError(t, err)

	_, err = r.bookings.RemoveRoom(ctx, b1.ID, r1.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)
	assert.Contains(t, err.Error(), "room not assigned to this booking")

	_, err = r.bookings.GetRoom(ctx, b1.ID, r1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, r.rooms.Delete(ctx, r1.ID))

	_, err = r.bookings.AssignRoom(ctx, b1.ID, r1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "room gone")
	_, err = r.bookings.AssignRoom(ctx, 404, r1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "booking missing")
}

func TestBookingLedger_ListRoomsKeepsOrder(t *testing.T) {
	r := newRegistries()
	b := r.booking(r.guest("G1", "Ana"), r.employee("E1", "Marta"))
	r1, r2 := r.room("a"), r.room("b")
	for _, id := range []int64{r2.ID, r1.ID} {
		_, err := r.bookings.AssignRoom(ctx, b.ID, id)
		require.NoError(t, err)
	}
	rooms, err := r.bookings.ListRooms(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "b", rooms[0].Type)
	assert.Equal(t, "a", rooms[1].Type)
}

func TestBookingLedger_UpdateKeepsRooms(t *testing.T) {
	r := newRegistries()
	g := r.guest("G1", "Ana")
	g2 := r.guest("G2", "Bea")
	e := r.employee("E1", "Marta")
	b := r.booking(g, e)
	rm := r.room("single")
	_, err := r.bookings.AssignRoom(ctx, b.ID, rm.ID)
	require.NoError(t, err)

	out, err := r.bookings.Update(ctx, b.ID, domain.Booking{
		StartDate: day(10), EndDate: day(12),
		Guest: &domain.Guest{ID: g2.ID}, Employee: &domain.Employee{ID: e.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, b.ID, out.ID)
	assert.Equal(t, "Bea", out.Guest.Name)
	assert.False(t, out.Active)
	assert.Equal(t, []int64{rm.ID}, out.RoomIDs)

	_, err = r.bookings.Update(ctx, b.ID, domain.Booking{Guest: &domain.Guest{ID: g2.ID}})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	_, err = r.bookings.Update(ctx, 404, domain.Booking{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingLedger_PatchMergesOntoStored(t *testing.T) {
	r := newRegistries()
	g := r.guest("G1", "Ana")
	e := r.employee("E1", "Marta")
	e2 := r.employee("E2", "Luis")
	b := r.booking(g, e)

	out, err := r.bookings.Patch(ctx, b.ID, domain.BookingPatch{EndDate: ptr(day(9))})
	require.NoError(t, err)
	assert.True(t, out.StartDate.Equal(day(1)))
	assert.True(t, out.EndDate.Equal(day(9)))
	assert.True(t, out.Active)
	assert.Equal(t, g.ID, out.Guest.ID)
	assert.Equal(t, e.ID, out.Employee.ID)

	out, err = r.bookings.Patch(ctx, b.ID, domain.BookingPatch{Employee: &domain.Employee{ID: e2.ID}, Guest: &domain.Guest{}})
	require.NoError(t, err)
	assert.Equal(t, "Luis", out.Employee.Name)
	assert.Equal(t, g.ID, out.Guest.ID, "reference without id counts as omitted")

	_, err = r.bookings.Patch(ctx, b.ID, domain.BookingPatch{Guest: &domain.Guest{ID: 9999}})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	_, err = r.bookings.Patch(ctx, 404, domain.BookingPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingLedger_DeleteReleasesRooms(t *testing.T) {
	r := newRegistries()
	b := r.booking(r.guest("G1", "Ana"), r.employee("E1", "Marta"))
	rm := r.room("single")
	_, err := r.bookings.AssignRoom(ctx, b.ID, rm.ID)
	require.NoError(t, err)

	require.NoError(t, r.bookings.Delete(ctx, b.ID))
	assert.ErrorIs(t, r.bookings.Delete(ctx, b.ID), domain.ErrNotFound)

	got, err := r.rooms.Get(ctx, rm.ID)
	require.NoError(t, err)
	assert.Empty(t, got.BookingIDs)
	require.NoError(t, r.rooms.Delete(ctx, rm.ID))
}

func TestBookingLedger_InverseLookups(t *testing.T) {
	r := newRegistries()
	g := r.guest("G1", "Ana")
	lonely := r.guest("G2", "Bea")
	e := r.employee("E1", "Marta")
	b1 := r.booking(g, e)
	b2 := r.booking(g, e)
	rm := r.room("single")
	_, err := r.bookings.AssignRoom(ctx, b2.ID, rm.ID)
	require.NoError(t, err)

	bs, err := r.bookings.ListByGuest(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, bs, 2)
	assert.Equal(t, b1.ID, bs[0].ID)

	_, err = r.bookings.ListByGuest(ctx, lonely.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := r.bookings.GetForGuest(ctx, g.ID, b2.ID)
	require.NoError(t, err)
	assert.Equal(t, b2.ID, got.ID)

	_, err = r.bookings.GetForGuest(ctx, lonely.ID, b2.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.bookings.GetForEmployee(ctx, e.ID, b1.ID)
	require.NoError(t, err)

	byRoom, err := r.bookings.ListByRoom(ctx, rm.ID)
	require.NoError(t, err)
	require.Len(t, byRoom, 1)
	assert.Equal(t, b2.ID, byRoom[0].ID)

	_, err = r.bookings.GetForRoom(ctx, rm.ID, b1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
