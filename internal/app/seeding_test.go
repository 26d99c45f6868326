package app_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_registry/internal/app"
)

const fixture = `
[[rooms]]
type = "single"
price = 40.0
available = true

[[rooms]]
type = "double"
price = 70.0

[[rooms]]
type = ""   # rejected: type is required

[[employees]]
national_id = "E-1"
name = "Marta"

[[guests]]
national_id = "G-1"
name = "Ana"
guarantor = "G-2"

[[guests]]
national_id = "G-2"
name = "Bruno"

[[guests]]
national_id = "G-3"
name = "Carla"
guarantor = "G-2"   # rejected: slot already held

[[bookings]]
guest = "G-1"
employee = "E-1"
start = 2026-06-01T14:00:00Z
end = 2026-06-04T10:00:00Z
active = true
rooms = [1, 2, 3]
`

func TestSeeder_Run(t *testing.T) {
	f, err := app.ParseFixture(strings.NewReader(fixture))
	require.NoError(t, err)
	require.Len(t, f.Rooms, 3)

	reg := newRegistries()
	s := &app.Seeder{Guests: reg.guests, Employees: reg.employees, Rooms: reg.rooms, Bookings: reg.bookings}
	rep, err := s.Run(context.Background(), f, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Rooms)
	assert.Equal(t, 1, rep.Employees)
	assert.Equal(t, 3, rep.Guests)
	assert.Equal(t, 1, rep.Guarantors)
	assert.Equal(t, 1, rep.Bookings)
	// bad room, held guarantor slot, reference to the bad room
	assert.Equal(t, 3, rep.Failed)

	bs, err := reg.bookings.List(context.Background())
	require.NoError(t, err)
	require.Len(t, bs, 1)
	assert.Len(t, bs[0].RoomIDs, 2)
	assert.Equal(t, "Ana", bs[0].Guest.Name)
}

func TestParseFixture_UnknownKey(t *testing.T) {
	_, err := app.ParseFixture(strings.NewReader("[[rooms]]\ntype = \"x\"\nbeds = 2\n"))
	assert.Error(t, err)
}
