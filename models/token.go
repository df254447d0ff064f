package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT session token with convenience accessors for the
// wallet auth flow.
//
// It embeds [jwt.Token] for low-level token operations (signing,
// parsing) and [jwt.RegisteredClaims] for standard claim access.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
//
// WalletAddress is a cached copy of the "sub" (subject) claim, which
// carries the canonicalized wallet address the token was issued for.
type Token struct {
	// Token is the underlying JWT used for signing and claim
	// inspection. Excluded from JSON serialization; only the compact
	// string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// WalletAddress is the wallet extracted from the "sub" claim.
	WalletAddress string `json:"-"`
}

// GetWalletAddress extracts the wallet address from the token's "sub"
// claim. Returns an error if the claim is missing or empty.
func (t *Token) GetWalletAddress() (string, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", errors.New("empty subject in token")
	}

	return subject, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
