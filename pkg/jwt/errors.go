package jwt

import "errors"

var (
	ErrMissingSecret    = errors.New("jwt: signing secret is required")
	ErrShortSecret      = errors.New("jwt: signing secret must be at least 32 bytes")
	ErrInvalidToken     = errors.New("jwt: invalid token")
	ErrExpiredToken     = errors.New("jwt: token expired")
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	ErrUnexpectedClaim  = errors.New("jwt: unexpected claim value")
	ErrSigningFailed    = errors.New("jwt: signing failed")
)
