package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/ksmdental/clinic/pkg/id"
)

// MinSecretLength is the shortest accepted HMAC secret, in bytes.
const MinSecretLength = 32

// StandardClaims are the registered claims. Embed it in custom claim types.
type StandardClaims = gojwt.RegisteredClaims

// Claims is implemented by every claim set the Service can parse.
type Claims = gojwt.Claims

// Config is read from the environment. An empty Secret disables admin auth.
type Config struct {
	Secret   string        `env:"ADMIN_JWT_SECRET"`
	Subject  string        `env:"ADMIN_JWT_SUBJECT" envDefault:"admin"`
	Issuer   string        `env:"ADMIN_JWT_ISSUER" envDefault:"ksmdental"`
	TokenTTL time.Duration `env:"ADMIN_JWT_TTL" envDefault:"24h"`
}

// Enabled reports whether a secret is configured.
func (c Config) Enabled() bool { return c.Secret != "" }

// Service signs and verifies tokens with a shared HMAC secret.
type Service struct {
	secret  []byte
	issuer  string
	subject string
	leeway  time.Duration
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithIssuer stamps issued tokens and requires the same issuer on parse.
func WithIssuer(iss string) Option {
	return func(s *Service) { s.issuer = iss }
}

// WithSubject requires parsed tokens to carry this subject.
func WithSubject(sub string) Option {
	return func(s *Service) { s.subject = sub }
}

// WithLeeway tolerates clock skew when checking exp, nbf and iat.
func WithLeeway(d time.Duration) Option {
	return func(s *Service) { s.leeway = d }
}

func withClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewFromString builds a Service from a secret of at least 32 bytes.
func NewFromString(secret string, opts ...Option) (*Service, error) {
	switch {
	case secret == "":
		return nil, ErrMissingSecret
	case len(secret) < MinSecretLength:
		return nil, ErrShortSecret
	}
	s := &Service{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromConfig is NewFromString with the issuer and subject from cfg.
func NewFromConfig(cfg Config) (*Service, error) {
	return NewFromString(cfg.Secret, WithIssuer(cfg.Issuer), WithSubject(cfg.Subject))
}

// Generate signs claims with HS256.
func (s *Service) Generate(claims Claims) (string, error) {
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	return token, nil
}

// Issue signs a token for subject that expires after ttl.
func (s *Service) Issue(subject string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := StandardClaims{
		ID:       id.NewULID(),
		Subject:  subject,
		Issuer:   s.issuer,
		IssuedAt: gojwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	}
	return s.Generate(claims)
}

// Parse verifies token and decodes it into claims.
// Only HS256 is accepted.
func (s *Service) Parse(token string, claims Claims) error {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(s.now),
		gojwt.WithLeeway(s.leeway),
		gojwt.WithIssuedAt(),
	}
	if s.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.issuer))
	}
	if s.subject != "" {
		opts = append(opts, gojwt.WithSubject(s.subject))
	}

	_, err := gojwt.ParseWithClaims(token, claims, func(*gojwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gojwt.ErrTokenExpired):
		return errors.Join(ErrExpiredToken, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return errors.Join(ErrInvalidSignature, err)
	case errors.Is(err, gojwt.ErrTokenInvalidSubject), errors.Is(err, gojwt.ErrTokenInvalidIssuer):
		return errors.Join(ErrUnexpectedClaim, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
