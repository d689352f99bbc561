package authapp

import (
	"encoding/json"
	"fmt"

	"github.com/jcpaschoal/autonet/app/sdk/errs"
	"github.com/jcpaschoal/autonet/business/domain/userbus"
)

// Token is the response of a successful login.
type Token struct {
	Token    string `json:"token"`
	TenantID string `json:"tenantID"`
	Role     string `json:"role"`
}

// Encode implements the web.Encoder interface.
func (t Token) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppToken(token string, usr userbus.User) Token {
	return Token{
		Token:    token,
		TenantID: usr.TenantID.String(),
		Role:     usr.Role.String(),
	}
}

// Login holds the credentials of a user.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *Login) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
