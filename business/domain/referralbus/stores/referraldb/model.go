package referraldb

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/referralstatus"
)

type referralDB struct {
	ID             uuid.UUID `db:"referral_id"`
	TenantID       uuid.UUID `db:"tenant_id"`
	Code           string    `db:"code"`
	ReferrerID     uuid.UUID `db:"referrer_id"`
	ProfessionalID uuid.UUID `db:"professional_id"`
	ReferredName   string    `db:"referred_name"`
	ReferredEmail  string    `db:"referred_email"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func toDBReferral(bus referralbus.Referral) referralDB {
	return referralDB{
		ID:             bus.ID,
		TenantID:       bus.TenantID,
		Code:           bus.Code,
		ReferrerID:     bus.ReferrerID,
		ProfessionalID: bus.ProfessionalID,
		ReferredName:   bus.ReferredName.String(),
		ReferredEmail:  bus.ReferredEmail.Address,
		Status:         bus.Status.String(),
		CreatedAt:      bus.CreatedAt.UTC(),
		UpdatedAt:      bus.UpdatedAt.UTC(),
	}
}

func toBusReferral(db referralDB) (referralbus.Referral, error) {
	nme, err := name.Parse(db.ReferredName)
	if err != nil {
		return referralbus.Referral{}, fmt.Errorf("parse name: %w", err)
	}

	status, err := referralstatus.Parse(db.Status)
	if err != nil {
		return referralbus.Referral{}, fmt.Errorf("parse status: %w", err)
	}

	bus := referralbus.Referral{
		ID:             db.ID,
		TenantID:       db.TenantID,
		Code:           db.Code,
		ReferrerID:     db.ReferrerID,
		ProfessionalID: db.ProfessionalID,
		ReferredName:   nme,
		ReferredEmail:  mail.Address{Address: db.ReferredEmail},
		Status:         status,
		CreatedAt:      db.CreatedAt.In(time.Local),
		UpdatedAt:      db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusReferrals(dbs []referralDB) ([]referralbus.Referral, error) {
	bus := make([]referralbus.Referral, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusReferral(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
