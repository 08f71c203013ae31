package internal

// Handler declares routes on a router.
//
//	type Contact struct{ notifier *notify.Notifier }
//
//	func (h *Contact) Routes(r clinic.Router) {
//		r.POST("/api/contact", h.submit)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves one request. A returned error is passed to the
// App's ErrorHandler unless a response was already written.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler writes the response for an error returned by a handler.
type ErrorHandler func(Context, error) error
