package middlewares

import (
	"errors"

	"github.com/ksmdental/clinic/internal"
	"github.com/ksmdental/clinic/pkg/jwt"
)

// JWTConfig configures the JWT middleware.
type JWTConfig struct {
	Extractor    internal.Extractor
	extractorSet bool
}

// JWTOption configures JWTConfig.
type JWTOption func(*JWTConfig)

// WithJWTExtractor sets a custom token extractor chain.
func WithJWTExtractor(ext internal.Extractor) JWTOption {
	return func(cfg *JWTConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// JWT returns middleware that extracts a bearer token, verifies it with svc
// and stores the parsed claims in the context. T is the claims type, e.g.
// jwt.StandardClaims or a struct embedding it.
func JWT[T any, PT interface {
	*T
	jwt.Claims
}](svc *jwt.Service, opts ...JWTOption) internal.Middleware {
	cfg := &JWTConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(internal.FromBearerToken())
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := cfg.Extractor.Extract(c)
			if !ok {
				return internal.ErrUnauthorized("Missing authentication token")
			}

			claims := PT(new(T))
			if err := svc.Parse(token, claims); err != nil {
				c.LogWarn("jwt rejected", "error", err)
				if errors.Is(err, jwt.ErrExpiredToken) {
					return internal.ErrUnauthorized("Token expired", internal.WithError(err))
				}
				return internal.ErrUnauthorized("Invalid token", internal.WithError(err))
			}

			c.Set(internal.JWTClaimsKey{}, (*T)(claims))
			return next(c)
		}
	}
}

// GetJWTClaims returns the claims stored by JWT, or nil.
func GetJWTClaims[T any](c internal.Context) *T {
	v, ok := c.Get(internal.JWTClaimsKey{}).(*T)
	if !ok {
		return nil
	}
	return v
}
