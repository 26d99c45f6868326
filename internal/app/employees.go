package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_registry/internal/domain"
)

type EmployeeDirectory struct {
	tx        domain.Transactor
	employees domain.EmployeeRepository
}

func NewEmployeeDirectory(tx domain.Transactor, r domain.EmployeeRepository) *EmployeeDirectory {
	return &EmployeeDirectory{tx: tx, employees: r}
}

func (d *EmployeeDirectory) List(ctx context.Context) (out []domain.Employee, err error) {
	defer func() { record("employees", "list", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		out, err = d.employees.FindAll(ctx)
		return err
	})
	return out, err
}

func (d *EmployeeDirectory) Get(ctx context.Context, id int64) (out domain.Employee, err error) {
	defer func() { record("employees", "get", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		out, err = d.find(ctx, id)
		return err
	})
	return out, err
}

func (d *EmployeeDirectory) find(ctx context.Context, id int64) (domain.Employee, error) {
	e, err := d.employees.FindByID(ctx, id)
	if err != nil {
		return domain.Employee{}, missing(err, msgEmployeeNotFound)
	}
	return e, nil
}

func (d *EmployeeDirectory) Create(ctx context.Context, e domain.Employee) (out domain.Employee, err error) {
	defer func() { record("employees", "create", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := d.checkNationalID(ctx, e.NationalID, 0); err != nil {
			return err
		}
		if strings.TrimSpace(e.Name) == "" {
			return illegal("employee name must not be blank")
		}
		e.ID = 0
		out, err = d.employees.Save(ctx, e)
		return err
	})
	if err == nil {
		log.Info().Int64("employee_id", out.ID).Msg("employee created")
	}
	return out, err
}

func (d *EmployeeDirectory) Update(ctx context.Context, id int64, e domain.Employee) (out domain.Employee, err error) {
	defer func() { record("employees", "update", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := d.find(ctx, id); err != nil {
			return err
		}
		if strings.TrimSpace(e.Name) == "" {
			return illegal("employee name must not be blank")
		}
		if err := d.checkNationalID(ctx, e.NationalID, id); err != nil {
			return err
		}
		e.ID = id
		out, err = d.employees.Save(ctx, e)
		return err
	})
	return out, err
}

func (d *EmployeeDirectory) Patch(ctx context.Context, id int64, p domain.EmployeePatch) (out domain.Employee, err error) {
	defer func() { record("employees", "patch", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := d.find(ctx, id)
		if err != nil {
			return err
		}
		if p.Name != nil {
			if strings.TrimSpace(*p.Name) == "" {
				return illegal("employee name must not be blank")
			}
			e.Name = *p.Name
		}
		if p.NationalID != nil {
			if err := d.checkNationalID(ctx, *p.NationalID, id); err != nil {
				return err
			}
			e.NationalID = *p.NationalID
		}
		if p.Address != nil {
			e.Address = *p.Address
		}
		if p.Phone != nil {
			e.Phone = *p.Phone
		}
		if p.Email != nil {
			e.Email = *p.Email
		}
		out, err = d.employees.Save(ctx, e)
		return err
	})
	return out, err
}

// Delete does not guard against bookings that still reference the employee;
// those bookings keep a dangling reference.
func (d *EmployeeDirectory) Delete(ctx context.Context, id int64) (err error) {
	defer func() { record("employees", "delete", err) }()
	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := d.find(ctx, id)
		if err != nil {
			return err
		}
		if n := len(e.BookingIDs); n > 0 {
			log.Warn().Int64("employee_id", id).Int("bookings", n).
				Msg("deleting employee still referenced by bookings")
		}
		return d.employees.DeleteByID(ctx, id)
	})
	return err
}

func (d *EmployeeDirectory) checkNationalID(ctx context.Context, nationalID string, ownerID int64) error {
	other, err := d.employees.FindByNationalID(ctx, nationalID)
	taken, err := found(err)
	if err != nil {
		return err
	}
	if taken && (ownerID == 0 || other.ID != ownerID) {
		return illegal("employee national id already exists")
	}
	return nil
}
