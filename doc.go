// Package clinic is the HTTP backend of the KSM Dental Care website.
//
// It accepts appointment and contact forms and turns them into email,
// proxies Google Places reviews so the API key never reaches the browser,
// and reports the numbers shown on the landing page.
//
// The package is a thin facade over the application core: the types a
// handler needs ([Context], [Router], [Handler]) and the options used to
// assemble an [App]. The binary lives in cmd/clinic; handlers live in
// internal/handlers.
//
// # Handlers
//
// Handlers implement [Handler] to declare routes and return errors instead
// of writing failure responses themselves:
//
//	type Reviews struct{ source ReviewSource }
//
//	func (h *Reviews) Routes(r clinic.Router) {
//	    r.GET("/api/reviews", h.list)
//	}
//
//	func (h *Reviews) list(c clinic.Context) error {
//	    reviews, err := h.source.Reviews(c)
//	    if err != nil {
//	        return clinic.ErrInternal("Error fetching reviews.", clinic.WithError(err))
//	    }
//	    return c.JSON(http.StatusOK, reviews)
//	}
//
// # Assembling the app
//
//	app := clinic.New(
//	    clinic.WithLogger(log, "clinic"),
//	    clinic.WithMiddleware(middlewares.Recover(), middlewares.RequestID()),
//	    clinic.WithHandlers(handlers.Health{}),
//	    clinic.WithErrorHandler(handlers.ErrorHandler(log)),
//	)
//	err := app.Run(":5000", clinic.ShutdownTimeout(30*time.Second))
//
// Run blocks until SIGINT or SIGTERM and then drains in-flight requests.
package clinic
