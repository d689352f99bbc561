package tenantdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/business/types/tenantstatus"
)

type tenantDB struct {
	ID             uuid.UUID      `db:"tenant_id"`
	Slug           string         `db:"slug"`
	Name           string         `db:"name"`
	LogoURL        sql.NullString `db:"logo_url"`
	PrimaryColor   sql.NullString `db:"primary_color"`
	SecondaryColor sql.NullString `db:"secondary_color"`
	Status         string         `db:"status"`
	Configuration  string         `db:"configuration"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func toDBTenant(bus tenantbus.Tenant) tenantDB {
	return tenantDB{
		ID:             bus.ID,
		Slug:           bus.Slug.String(),
		Name:           bus.Name.String(),
		LogoURL:        nullString(bus.Branding.LogoURL),
		PrimaryColor:   nullString(bus.Branding.PrimaryColor),
		SecondaryColor: nullString(bus.Branding.SecondaryColor),
		Status:         bus.Status.String(),
		Configuration:  string(bus.Configuration),
		CreatedAt:      bus.CreatedAt.UTC(),
		UpdatedAt:      bus.UpdatedAt.UTC(),
	}
}

func toBusTenant(db tenantDB) (tenantbus.Tenant, error) {
	slg, err := slug.Parse(db.Slug)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse slug: %w", err)
	}

	nme, err := name.Parse(db.Name)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse name: %w", err)
	}

	status, err := tenantstatus.Parse(db.Status)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse status: %w", err)
	}

	bus := tenantbus.Tenant{
		ID:   db.ID,
		Slug: slg,
		Name: nme,
		Branding: tenantbus.Branding{
			LogoURL:        db.LogoURL.String,
			PrimaryColor:   db.PrimaryColor.String,
			SecondaryColor: db.SecondaryColor.String,
		},
		Status:        status,
		Configuration: json.RawMessage(db.Configuration),
		CreatedAt:     db.CreatedAt.In(time.Local),
		UpdatedAt:     db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusTenants(dbs []tenantDB) ([]tenantbus.Tenant, error) {
	bus := make([]tenantbus.Tenant, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusTenant(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
