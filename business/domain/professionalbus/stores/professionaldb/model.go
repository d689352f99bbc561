package professionaldb

import (
	"database/sql"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/professionalbus"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/phone"
	"github.com/jcpaschoal/autonet/business/types/specialty"
)

type professionalDB struct {
	ID           uuid.UUID      `db:"professional_id"`
	TenantID     uuid.UUID      `db:"tenant_id"`
	Name         string         `db:"name"`
	BusinessName sql.NullString `db:"business_name"`
	Email        string         `db:"email"`
	Phone        sql.NullString `db:"phone"`
	Specialty    string         `db:"specialty"`
	Enabled      bool           `db:"enabled"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func toDBProfessional(bus professionalbus.Professional) professionalDB {
	return professionalDB{
		ID:           bus.ID,
		TenantID:     bus.TenantID,
		Name:         bus.Name.String(),
		BusinessName: sql.NullString{String: bus.BusinessName, Valid: bus.BusinessName != ""},
		Email:        bus.Email.Address,
		Phone:        phone.ToSQLNullString(bus.Phone),
		Specialty:    bus.Specialty.String(),
		Enabled:      bus.Enabled,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusProfessional(db professionalDB) (professionalbus.Professional, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return professionalbus.Professional{}, fmt.Errorf("parse name: %w", err)
	}

	phn, err := phone.ParseNull(db.Phone.String)
	if err != nil {
		return professionalbus.Professional{}, fmt.Errorf("parse phone: %w", err)
	}

	spc, err := specialty.Parse(db.Specialty)
	if err != nil {
		return professionalbus.Professional{}, fmt.Errorf("parse specialty: %w", err)
	}

	bus := professionalbus.Professional{
		ID:           db.ID,
		TenantID:     db.TenantID,
		Name:         nme,
		BusinessName: db.BusinessName.String,
		Email:        mail.Address{Address: db.Email},
		Phone:        phn,
		Specialty:    spc,
		Enabled:      db.Enabled,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusProfessionals(dbs []professionalDB) ([]professionalbus.Professional, error) {
	bus := make([]professionalbus.Professional, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusProfessional(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
