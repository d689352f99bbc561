package customerdb

import (
	"database/sql"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/customerbus"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/phone"
)

type customerDB struct {
	ID           uuid.UUID      `db:"customer_id"`
	TenantID     uuid.UUID      `db:"tenant_id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	Phone        sql.NullString `db:"phone"`
	VehicleMake  sql.NullString `db:"vehicle_make"`
	VehicleModel sql.NullString `db:"vehicle_model"`
	VehicleYear  sql.NullInt32  `db:"vehicle_year"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func toDBCustomer(bus customerbus.Customer) customerDB {
	return customerDB{
		ID:           bus.ID,
		TenantID:     bus.TenantID,
		Name:         bus.Name.String(),
		Email:        bus.Email.Address,
		Phone:        phone.ToSQLNullString(bus.Phone),
		VehicleMake:  sql.NullString{String: bus.Vehicle.Make, Valid: bus.Vehicle.Make != ""},
		VehicleModel: sql.NullString{String: bus.Vehicle.Model, Valid: bus.Vehicle.Model != ""},
		VehicleYear:  sql.NullInt32{Int32: int32(bus.Vehicle.Year), Valid: bus.Vehicle.Year != 0},
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusCustomer(db customerDB) (customerbus.Customer, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return customerbus.Customer{}, fmt.Errorf("parse name: %w", err)
	}

	phn, err := phone.ParseNull(db.Phone.String)
	if err != nil {
		return customerbus.Customer{}, fmt.Errorf("parse phone: %w", err)
	}

	bus := customerbus.Customer{
		ID:       db.ID,
		TenantID: db.TenantID,
		Name:     nme,
		Email:    mail.Address{Address: db.Email},
		Phone:    phn,
		Vehicle: customerbus.Vehicle{
			Make:  db.VehicleMake.String,
			Model: db.VehicleModel.String,
			Year:  int(db.VehicleYear.Int32),
		},
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusCustomers(dbs []customerDB) ([]customerbus.Customer, error) {
	bus := make([]customerbus.Customer, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusCustomer(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
