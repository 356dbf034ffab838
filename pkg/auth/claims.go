package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/harborcommerce/backoffice-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT. The
// platform mints these for dashboard users and shoppers; this service only
// verifies them, but minting survives for tests and local tooling.
type AccessTokenPayload struct {
	UserID string
	Shop   string
	Role   enums.ActorRole
	JTI    string
}

// AccessTokenClaims represents the typed JWT presented by clients.
type AccessTokenClaims struct {
	UserID string          `json:"user_id"`
	Shop   string          `json:"shop"`
	Role   enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
