package token

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/jobboard/internal/model"
)

// Decoder reads token payloads without checking signatures. Clients use it
// for routing only; authorization stays with the backend.
type Decoder struct {
	parser *jwt.Parser
}

// NewDecoder creates an unverified token decoder.
func NewDecoder() *Decoder {
	return &Decoder{parser: jwt.NewParser()}
}

var _ model.TokenDecoder = (*Decoder)(nil)

// Decode extracts claims from the token. It fails with model.ErrMalformedToken
// when the token is not a JWT or carries no principal id.
func (d *Decoder) Decode(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	if _, _, err := d.parser.ParseUnverified(strings.TrimSpace(tokenString), claims); err != nil {
		return model.Claims{}, fmt.Errorf("%w: %v", model.ErrMalformedToken, err)
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return model.Claims{}, fmt.Errorf("%w: missing principal id", model.ErrMalformedToken)
	}

	out := model.Claims{
		UserID:           userID,
		Email:            claims.Email,
		Username:         claims.Username,
		Role:             model.ParseRole(claims.Role),
		FirstLogin:       claims.FirstLogin,
		IsSuperAdmin:     claims.IsSuperAdmin,
		OnboardingStatus: model.OnboardingState(claims.OnboardingStatus),
	}
	if claims.IssuedAt != nil {
		t := claims.IssuedAt.Time
		out.IssuedAt = &t
	}
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		out.ExpiresAt = &t
	}

	return out, nil
}
