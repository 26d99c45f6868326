package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_registry/internal/domain"
)

// Fixture is the seed file layout. Guests, employees and bookings refer to
// each other by national id; bookings refer to rooms by their 1-based
// position in Rooms.
type Fixture struct {
	Rooms     []FixtureRoom     `toml:"rooms"`
	Employees []FixtureEmployee `toml:"employees"`
	Guests    []FixtureGuest    `toml:"guests"`
	Bookings  []FixtureBooking  `toml:"bookings"`
}

type FixtureRoom struct {
	Type        string  `toml:"type"`
	Price       float64 `toml:"price"`
	Available   bool    `toml:"available"`
	Description string  `toml:"description"`
}

type FixtureEmployee struct {
	NationalID string `toml:"national_id"`
	Name       string `toml:"name"`
	Address    string `toml:"address"`
	Phone      string `toml:"phone"`
	Email      string `toml:"email"`
}

type FixtureGuest struct {
	NationalID string `toml:"national_id"`
	Name       string `toml:"name"`
	Address    string `toml:"address"`
	Phone      string `toml:"phone"`
	Email      string `toml:"email"`
	Guarantor  string `toml:"guarantor"` // national id of another fixture guest
}

type FixtureBooking struct {
	Guest    string    `toml:"guest"`
	Employee string    `toml:"employee"`
	Start    time.Time `toml:"start"`
	End      time.Time `toml:"end"`
	Active   bool      `toml:"active"`
	Rooms    []int     `toml:"rooms"`
}

func ParseFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Fixture{}, fmt.Errorf("decode fixture: unknown keys %v", undec)
	}
	return f, nil
}

type SeedReport struct {
	Rooms, Employees, Guests, Guarantors, Bookings int
	Failed                                         int
}

// Seeder loads a fixture through the registries, so every record passes the
// same checks as an API call. A rejected record is logged and skipped.
type Seeder struct {
	Guests    *GuestDirectory
	Employees *EmployeeDirectory
	Rooms     *RoomInventory
	Bookings  *BookingLedger
}

func (s *Seeder) Run(ctx context.Context, f Fixture, workers int) (SeedReport, error) {
	var rep SeedReport
	roomIDs, err := s.seedRooms(ctx, f.Rooms, workers, &rep)
	if err != nil {
		return rep, err
	}

	employeeIDs := map[string]int64{}
	for _, fe := range f.Employees {
		e, err := s.Employees.Create(ctx, domain.Employee{
			NationalID: fe.NationalID, Name: fe.Name, Address: fe.Address, Phone: fe.Phone, Email: fe.Email,
		})
		if err != nil {
			rep.Failed++
			log.Warn().Str("national_id", fe.NationalID).Err(err).Msg("seed employee failed")
			continue
		}
		employeeIDs[fe.NationalID] = e.ID
		rep.Employees++
	}

	// guarantors may appear later in the file, so link them in a second pass
	guestIDs := map[string]int64{}
	for _, fg := range f.Guests {
		g, err := s.Guests.Create(ctx, domain.Guest{
			NationalID: fg.NationalID, Name: fg.Name, Address: fg.Address, Phone: fg.Phone, Email: fg.Email,
		})
		if err != nil {
			rep.Failed++
			log.Warn().Str("national_id", fg.NationalID).Err(err).Msg("seed guest failed")
			continue
		}
		guestIDs[fg.NationalID] = g.ID
		rep.Guests++
	}
	for _, fg := range f.Guests {
		if fg.Guarantor == "" {
			continue
		}
		guestID, ok1 := guestIDs[fg.NationalID]
		guarantorID, ok2 := guestIDs[fg.Guarantor]
		if !ok1 || !ok2 {
			rep.Failed++
			log.Warn().Str("guest", fg.NationalID).Str("guarantor", fg.Guarantor).Msg("seed guarantor skipped, guest missing")
			continue
		}
		if _, err := s.Guests.AssignGuarantor(ctx, guestID, guarantorID); err != nil {
			rep.Failed++
			log.Warn().Str("guest", fg.NationalID).Err(err).Msg("seed guarantor failed")
			continue
		}
		rep.Guarantors++
	}

	for i, fb := range f.Bookings {
		b, err := s.Bookings.Create(ctx, domain.Booking{
			StartDate: fb.Start,
			EndDate:   fb.End,
			Active:    fb.Active,
			Guest:     &domain.Guest{ID: guestIDs[fb.Guest]},
			Employee:  &domain.Employee{ID: employeeIDs[fb.Employee]},
		})
		if err != nil {
			rep.Failed++
			log.Warn().Int("booking", i+1).Err(err).Msg("seed booking failed")
			continue
		}
		rep.Bookings++
		for _, pos := range fb.Rooms {
			if pos < 1 || pos > len(roomIDs) || roomIDs[pos-1] == 0 {
				rep.Failed++
				log.Warn().Int("booking", i+1).Int("room", pos).Msg("seed room reference skipped")
				continue
			}
			if _, err := s.Bookings.AssignRoom(ctx, b.ID, roomIDs[pos-1]); err != nil {
				rep.Failed++
				log.Warn().Int("booking", i+1).Int("room", pos).Err(err).Msg("seed room assignment failed")
			}
		}
	}
	return rep, nil
}

// seedRooms creates rooms with at most workers in flight. The result keeps
// fixture order; a failed room leaves a zero id.
func (s *Seeder) seedRooms(ctx context.Context, rooms []FixtureRoom, workers int, rep *SeedReport) ([]int64, error) {
	if workers <= 0 {
		workers = 1
	}
	ids := make([]int64, len(rooms))
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)
	for i, fr := range rooms {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int, fr FixtureRoom) {
			defer wg.Done()
			defer sem.Release(1)
			r, err := s.Rooms.Create(ctx, domain.Room{
				Type: fr.Type, Price: fr.Price, Available: fr.Available, Description: fr.Description,
			})
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				log.Warn().Int("room", i+1).Err(err).Msg("seed room failed")
				return
			}
			ids[i] = r.ID
		}(i, fr)
	}
	wg.Wait()
	rep.Failed += failed
	rep.Rooms = len(rooms) - failed
	return ids, nil
}
