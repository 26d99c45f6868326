package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"hotel_registry/internal/domain"
)

// RoomInventory owns room records. A room referenced by any booking cannot be
// deleted; the references themselves are managed by BookingLedger.
type RoomInventory struct {
	tx    domain.Transactor
	rooms domain.RoomRepository
}

func NewRoomInventory(tx domain.Transactor, r domain.RoomRepository) *RoomInventory {
	return &RoomInventory{tx: tx, rooms: r}
}

func (s *RoomInventory) List(ctx context.Context) (out []domain.Room, err error) {
	defer func() { record("rooms", "list", err) }()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		out, err = s.rooms.FindAll(ctx)
		return err
	})
	return out, err
}

func (s *RoomInventory) Get(ctx context.Context, id int64) (out domain.Room, err error) {
	defer func() { record("rooms", "get", err) }()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		out, err = s.find(ctx, id)
		return err
	})
	return out, err
}

func (s *RoomInventory) find(ctx context.Context, id int64) (domain.Room, error) {
	r, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return domain.Room{}, missing(err, msgRoomNotFound)
	}
	return r, nil
}

func (s *RoomInventory) Create(ctx context.Context, r domain.Room) (out domain.Room, err error) {
	defer func() { record("rooms", "create", err) }()
	if err = validateInput(r); err != nil {
		return domain.Room{}, err
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		r.ID = 0
		out, err = s.rooms.Save(ctx, r)
		return err
	})
	if err == nil {
		log.Info().Int64("room_id", out.ID).Msg("room created")
	}
	return out, err
}

func (s *RoomInventory) Update(ctx context.Context, id int64, r domain.Room) (out domain.Room, err error) {
	defer func() { record("rooms", "update", err) }()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.find(ctx, id); err != nil {
			return err
		}
		if err := validateInput(r); err != nil {
			return err
		}
		r.ID = id
		out, err = s.rooms.Save(ctx, r)
		return err
	})
	return out, err
}

func (s *RoomInventory) Patch(ctx context.Context, id int64, p domain.RoomPatch) (out domain.Room, err error) {
	defer func() { record("rooms", "patch", err) }()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := s.find(ctx, id)
		if err != nil {
			return err
		}
		if err := validateInput(p); err != nil {
			return err
		}
		if p.Type != nil {
			r.Type = *p.Type
		}
		if p.Available != nil {
			r.Available = *p.Available
		}
		if p.Price != nil {
			r.Price = *p.Price
		}
		if p.Description != nil {
			r.Description = *p.Description
		}
		out, err = s.rooms.Save(ctx, r)
		return err
	})
	return out, err
}

func (s *RoomInventory) Delete(ctx context.Context, id int64) (err error) {
	defer func() { record("rooms", "delete", err) }()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := s.find(ctx, id)
		if err != nil {
			return err
		}
		if len(r.BookingIDs) > 0 {
			return illegal("the room has bookings assigned")
		}
		return s.rooms.DeleteByID(ctx, id)
	})
	if err == nil {
		log.Info().Int64("room_id", id).Msg("room deleted")
	}
	return err
}
