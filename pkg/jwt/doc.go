// Package jwt signs and verifies HS256 tokens for the admin endpoints.
//
//	svc, err := jwt.NewFromString(cfg.Secret, jwt.WithSubject("admin"))
//	token, err := svc.Issue("admin", 24*time.Hour)
//
//	var claims jwt.StandardClaims
//	if err := svc.Parse(token, &claims); errors.Is(err, jwt.ErrExpiredToken) {
//		// ask for a fresh token
//	}
package jwt
