package referralapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/business/domain/referralbus"
	"github.com/jcpaschoal/autonet/business/types/name"
	"github.com/jcpaschoal/autonet/business/types/referralstatus"
)

// Referral represents a referral made by a customer.
type Referral struct {
	ID             string `json:"id"`
	TenantID       string `json:"tenantID"`
	Code           string `json:"code"`
	ReferrerID     string `json:"referrerID"`
	ProfessionalID string `json:"professionalID"`
	ReferredName   string `json:"referredName"`
	ReferredEmail  string `json:"referredEmail"`
	Status         string `json:"status"`
	DateCreated    string `json:"dateCreated"`
	DateUpdated    string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (app Referral) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppReferral(bus referralbus.Referral) Referral {
	return Referral{
		ID:             bus.ID.String(),
		TenantID:       bus.TenantID.String(),
		Code:           bus.Code,
		ReferrerID:     bus.ReferrerID.String(),
		ProfessionalID: bus.ProfessionalID.String(),
		ReferredName:   bus.ReferredName.String(),
		ReferredEmail:  bus.ReferredEmail.Address,
		Status:         bus.Status.String(),
		DateCreated:    bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:    bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppReferrals(refs []referralbus.Referral) []Referral {
	app := make([]Referral, len(refs))
	for i, ref := range refs {
		app[i] = toAppReferral(ref)
	}
	return app
}

// =============================================================================

// NewReferral defines the data needed to add a new referral.
type NewReferral struct {
	ReferrerID     string `json:"referrerID" validate:"required"`
	ProfessionalID string `json:"professionalID" validate:"required"`
	ReferredName   string `json:"referredName" validate:"required"`
	ReferredEmail  string `json:"referredEmail" validate:"required,email"`
}

// Decode implements the web.Decoder interface.
func (app *NewReferral) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewReferral) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewReferral(tenantID uuid.UUID, app NewReferral) (referralbus.NewReferral, error) {
	var fieldErrors errs.FieldErrors

	referrerID, err := uuid.Parse(app.ReferrerID)
	if err != nil {
		fieldErrors.Add("referrerID", err)
	}

	professionalID, err := uuid.Parse(app.ProfessionalID)
	if err != nil {
		fieldErrors.Add("professionalID", err)
	}

	nme, err := name.Parse(app.ReferredName)
	if err != nil {
		fieldErrors.Add("referredName", err)
	}

	addr, err := mail.ParseAddress(app.ReferredEmail)
	if err != nil {
		fieldErrors.Add("referredEmail", err)
	}

	if fieldErrors != nil {
		return referralbus.NewReferral{}, fieldErrors
	}

	bus := referralbus.NewReferral{
		TenantID:       tenantID,
		ReferrerID:     referrerID,
		ProfessionalID: professionalID,
		ReferredName:   nme,
		ReferredEmail:  *addr,
	}

	return bus, nil
}

// =============================================================================

// UpdateStatus defines the data needed to move a referral along.
type UpdateStatus struct {
	Status string `json:"status" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateStatus) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateStatus) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusStatus(app UpdateStatus) (referralstatus.Status, error) {
	status, err := referralstatus.Parse(app.Status)
	if err != nil {
		return referralstatus.Status{}, fmt.Errorf("parse status: %w", err)
	}

	return status, nil
}
