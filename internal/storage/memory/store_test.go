package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_registry/internal/domain"
	"hotel_registry/internal/storage/memory"
)

func TestWithinTx_RollbackOnError(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	kept, err := st.Guests().Save(ctx, domain.Guest{NationalID: "1", Name: "Ana"})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = st.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := st.Guests().Save(ctx, domain.Guest{NationalID: "2"}); err != nil {
			return err
		}
		kept.Name = "changed"
		if _, err := st.Guests().Save(ctx, kept); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := st.Guests().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ana", all[0].Name)
	_, err = st.Guests().FindByNationalID(ctx, "2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// the id sequence rolls back too
	next, err := st.Guests().Save(ctx, domain.Guest{NationalID: "3"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID)
}

func TestWithinTx_NestedJoinsOuter(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	boom := errors.New("boom")
	err := st.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, st.WithinTx(ctx, func(ctx context.Context) error {
			_, err := st.Rooms().Save(ctx, domain.Room{Type: "inner"})
			return err
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)
	rooms, err := st.Rooms().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms, "inner write undone with the outer transaction")
}

func TestGuestRepo_GuarantorIndex(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	guests := st.Guests()
	a, _ := guests.Save(ctx, domain.Guest{NationalID: "A"})
	b, _ := guests.Save(ctx, domain.Guest{NationalID: "B", GuarantorID: &a.ID})

	holder, err := guests.FindByGuarantor(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, holder.ID)

	// moving the guarantor frees the old slot
	c, _ := guests.Save(ctx, domain.Guest{NationalID: "C"})
	b.GuarantorID = &c.ID
	_, err = guests.Save(ctx, b)
	require.NoError(t, err)
	_, err = guests.FindByGuarantor(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	holder, err = guests.FindByGuarantor(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, holder.ID)

	require.NoError(t, guests.DeleteByID(ctx, b.ID))
	_, err = guests.FindByGuarantor(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReadsAreCopies(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	b, err := st.Bookings().Save(ctx, domain.Booking{RoomIDs: []int64{1}, Guest: &domain.Guest{ID: 3, Name: "full"}})
	require.NoError(t, err)
	assert.Empty(t, b.Guest.Name, "stored references are shallow")

	b.RoomIDs[0] = 99
	got, err := st.Bookings().FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, got.RoomIDs)
}

func TestInverseSidesDerived(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	g, _ := st.Guests().Save(ctx, domain.Guest{NationalID: "G"})
	r, _ := st.Rooms().Save(ctx, domain.Room{Type: "single"})
	b, _ := st.Bookings().Save(ctx, domain.Booking{Guest: &domain.Guest{ID: g.ID}, RoomIDs: []int64{r.ID}})

	gotG, err := st.Guests().FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, gotG.BookingIDs)
	gotR, err := st.Rooms().FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, gotR.BookingIDs)

	require.NoError(t, st.Bookings().DeleteByID(ctx, b.ID))
	gotR, err = st.Rooms().FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, gotR.BookingIDs)
}

func TestConcurrentTransactionsSerialise(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.WithinTx(ctx, func(ctx context.Context) error {
				_, err := st.Rooms().Save(ctx, domain.Room{Type: "x"})
				return err
			})
		}()
	}
	wg.Wait()
	rooms, err := st.Rooms().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, n)
	assert.Equal(t, int64(n), rooms[n-1].ID)
}
