package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"hotel_registry/internal/domain"
)

// GuestDirectory owns guest records and the guarantor relationship. A guest
// may hold at most one guarantor and a guarantor backs at most one guest.
type GuestDirectory struct {
	tx     domain.Transactor
	guests domain.GuestRepository
}

func NewGuestDirectory(tx domain.Transactor, r domain.GuestRepository) *GuestDirectory {
	return &GuestDirectory{tx: tx, guests: r}
}

func (d *GuestDirectory) List(ctx context.Context) (out []domain.Guest, err error) {
	defer func() { record("guests", "list", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		out, err = d.guests.FindAll(ctx)
		return err
	})
	return out, err
}

func (d *GuestDirectory) Get(ctx context.Context, id int64) (out domain.Guest, err error) {
	defer func() { record("guests", "get", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		out, err = d.find(ctx, id)
		return err
	})
	return out, err
}

func (d *GuestDirectory) find(ctx context.Context, id int64) (domain.Guest, error) {
	g, err := d.guests.FindByID(ctx, id)
	if err != nil {
		return domain.Guest{}, missing(err, msgGuestNotFound)
	}
	return g, nil
}

func (d *GuestDirectory) Create(ctx context.Context, g domain.Guest) (out domain.Guest, err error) {
	defer func() { record("guests", "create", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		if g.GuarantorID != nil {
			if err := d.checkGuarantor(ctx, 0, *g.GuarantorID); err != nil {
				return err
			}
		}
		if err := d.checkNationalID(ctx, g.NationalID, 0); err != nil {
			return err
		}
		g.ID = 0
		out, err = d.guests.Save(ctx, g)
		return err
	})
	if err == nil {
		log.Info().Int64("guest_id", out.ID).Msg("guest created")
	}
	return out, err
}

// Update replaces every field of the stored guest, the guarantor included.
func (d *GuestDirectory) Update(ctx context.Context, id int64, g domain.Guest) (out domain.Guest, err error) {
	defer func() { record("guests", "update", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := d.find(ctx, id); err != nil {
			return err
		}
		if g.GuarantorID != nil {
			if err := d.checkGuarantor(ctx, id, *g.GuarantorID); err != nil {
				return err
			}
		}
		if err := d.checkNationalID(ctx, g.NationalID, id); err != nil {
			return err
		}
		g.ID = id
		out, err = d.guests.Save(ctx, g)
		return err
	})
	return out, err
}

// Patch merges the supplied fields onto the stored guest. A supplied national
// id must be free across every guest, this one included.
func (d *GuestDirectory) Patch(ctx context.Context, id int64, p domain.GuestPatch) (out domain.Guest, err error) {
	defer func() { record("guests", "patch", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		g, err := d.find(ctx, id)
		if err != nil {
			return err
		}
		if p.Name != nil {
			g.Name = *p.Name
		}
		if p.NationalID != nil {
			if err := d.checkNationalID(ctx, *p.NationalID, 0); err != nil {
				return err
			}
			g.NationalID = *p.NationalID
		}
		if p.Address != nil {
			g.Address = *p.Address
		}
		if p.Phone != nil {
			g.Phone = *p.Phone
		}
		if p.Email != nil {
			g.Email = *p.Email
		}
		if p.GuarantorID != nil {
			if err := d.checkGuarantor(ctx, id, *p.GuarantorID); err != nil {
				return err
			}
			gid := *p.GuarantorID
			g.GuarantorID = &gid
		}
		out, err = d.guests.Save(ctx, g)
		return err
	})
	return out, err
}

func (d *GuestDirectory) Delete(ctx context.Context, id int64) (err error) {
	defer func() { record("guests", "delete", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := d.find(ctx, id); err != nil {
			return err
		}
		_, err := d.guests.FindByGuarantor(ctx, id)
		held, err := found(err)
		if err != nil {
			return err
		}
		if held {
			return illegal("cannot delete, the guest is guarantor of another guest")
		}
		return d.guests.DeleteByID(ctx, id)
	})
	if err == nil {
		log.Info().Int64("guest_id", id).Msg("guest deleted")
	}
	return err
}

func (d *GuestDirectory) AssignGuarantor(ctx context.Context, guestID, guarantorID int64) (out domain.Guest, err error) {
	defer func() { record("guests", "assign_guarantor", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		g, err := d.find(ctx, guestID)
		if err != nil {
			return err
		}
		if _, err := d.guests.FindByID(ctx, guarantorID); err != nil {
			return missing(err, msgGuarantorNotFound)
		}
		if guestID == guarantorID {
			return illegal("a guest cannot be their own guarantor")
		}
		_, err = d.guests.FindByGuarantor(ctx, guarantorID)
		held, err := found(err)
		if err != nil {
			return err
		}
		if held {
			return illegal("guarantor already designated to a guest")
		}
		g.GuarantorID = &guarantorID
		out, err = d.guests.Save(ctx, g)
		return err
	})
	if err == nil {
		log.Info().Int64("guest_id", guestID).Int64("guarantor_id", guarantorID).Msg("guarantor assigned")
	}
	return out, err
}

func (d *GuestDirectory) RemoveGuarantor(ctx context.Context, guestID int64) (out domain.Guest, err error) {
	defer func() { record("guests", "remove_guarantor", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		g, err := d.find(ctx, guestID)
		if err != nil {
			return err
		}
		if g.GuarantorID == nil {
			return illegal("the guest has no guarantor")
		}
		g.GuarantorID = nil
		out, err = d.guests.Save(ctx, g)
		return err
	})
	return out, err
}

// checkGuarantor resolves guarantorID and claims its slot for guestID
// (0 while the guest does not exist yet).
func (d *GuestDirectory) checkGuarantor(ctx context.Context, guestID, guarantorID int64) error {
	if _, err := d.guests.FindByID(ctx, guarantorID); err != nil {
		return missing(err, msgGuarantorNotFound)
	}
	if guestID != 0 && guestID == guarantorID {
		return illegal("a guest cannot be their own guarantor")
	}
	holder, err := d.guests.FindByGuarantor(ctx, guarantorID)
	held, err := found(err)
	if err != nil {
		return err
	}
	if held && holder.ID != guestID {
		return illegal("guarantor already designated")
	}
	return nil
}

// checkNationalID rejects nationalID when a guest other than ownerID has it.
func (d *GuestDirectory) checkNationalID(ctx context.Context, nationalID string, ownerID int64) error {
	other, err := d.guests.FindByNationalID(ctx, nationalID)
	taken, err := found(err)
	if err != nil {
		return err
	}
	if taken && (ownerID == 0 || other.ID != ownerID) {
		return illegal("guest national id already exists")
	}
	return nil
}
