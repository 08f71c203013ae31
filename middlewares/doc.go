// Package middlewares provides the HTTP middleware stack of the clinic API.
//
// The server installs them in this order, outermost first:
//
//	clinic.WithMiddleware(
//		middlewares.Recover(),
//		middlewares.RequestID(),
//		middlewares.AccessLog(cfg.RateLimit.TrustedProxies),
//		middlewares.SecureHeaders(),
//		middlewares.CORS(middlewares.WithAllowOrigins(cfg.HTTP.ClientOrigins...)),
//		middlewares.RateLimit(limiter, middlewares.WithTrustedProxies(cfg.RateLimit.TrustedProxies)),
//		middlewares.BodyLimit(cfg.HTTP.BodyLimit),
//		middlewares.Timeout(cfg.HTTP.RequestTimeout),
//	)
//
// Recover must be first so that panics in any later middleware become a
// PanicError. RequestID comes next so every log line, including the access
// log, carries the request_id attribute:
//
//	log := logger.New(cfg.Log, os.Stdout, middlewares.RequestIDExtractor())
//
// Timeout does not spawn a goroutine. It attaches a deadline to the request
// context and reports a TimeoutError when the handler returns after the
// deadline without writing a response.
//
// JWT guards admin routes:
//
//	r.GET("/api/test-email", h.testEmail, middlewares.JWT[jwt.StandardClaims](svc))
package middlewares
