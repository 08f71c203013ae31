package handlers

import (
	"github.com/ksmdental/clinic/internal/notify"
	"github.com/ksmdental/clinic/pkg/validator"
)

// AppointmentForm is the body of POST /api/appointment.
type AppointmentForm struct {
	FullName      string `json:"fullName" sanitize:"trim,nfc,singleline"`
	Phone         string `json:"phone" sanitize:"trim,singleline"`
	Email         string `json:"email" sanitize:"trim,singleline"`
	Service       string `json:"service" sanitize:"trim,nfc,singleline"`
	PreferredDate string `json:"preferredDate" sanitize:"trim,singleline"`
	PreferredTime string `json:"preferredTime" sanitize:"trim,singleline"`
	Message       string `json:"message" sanitize:"trim,nfc,nocontrol"`
}

func (f *AppointmentForm) Validate() error {
	return validator.Apply(
		validator.MinLenString("fullName", f.FullName, 2),
		validator.MaxLenString("fullName", f.FullName, 80),
		validator.MinLenString("phone", f.Phone, 7),
		validator.MaxLenString("phone", f.Phone, 25),
		validator.EmailString("email", f.Email),
		validator.MinLenString("service", f.Service, 2),
		validator.MaxLenString("service", f.Service, 80),
		validator.MinLenString("preferredDate", f.PreferredDate, 4),
		validator.MaxLenString("preferredDate", f.PreferredDate, 20),
		validator.MaxLenString("preferredTime", f.PreferredTime, 20),
		validator.MaxLenString("message", f.Message, 800),
	)
}

func (f *AppointmentForm) appointment() notify.Appointment {
	return notify.Appointment{
		FullName:      f.FullName,
		Phone:         f.Phone,
		Email:         f.Email,
		Service:       f.Service,
		PreferredDate: f.PreferredDate,
		PreferredTime: f.PreferredTime,
		Message:       f.Message,
	}
}

// ContactForm is the body of POST /api/contact.
type ContactForm struct {
	FullName string `json:"fullName" sanitize:"trim,nfc,singleline"`
	Email    string `json:"email" sanitize:"trim,singleline"`
	Phone    string `json:"phone" sanitize:"trim,singleline"`
	Message  string `json:"message" sanitize:"trim,nfc,nocontrol"`
}

func (f *ContactForm) Validate() error {
	return validator.Apply(
		validator.MinLenString("fullName", f.FullName, 2),
		validator.MaxLenString("fullName", f.FullName, 80),
		validator.EmailString("email", f.Email),
		validator.When(f.Phone != "", validator.MinLenString("phone", f.Phone, 7)),
		validator.MaxLenString("phone", f.Phone, 25),
		validator.MinLenString("message", f.Message, 5),
		validator.MaxLenString("message", f.Message, 1500),
	)
}

func (f *ContactForm) contact() notify.Contact {
	return notify.Contact{
		FullName: f.FullName,
		Email:    f.Email,
		Phone:    f.Phone,
		Message:  f.Message,
	}
}

// formErrors is the details payload of a 400 "Invalid form data." response.
type formErrors struct {
	FieldErrors map[string][]string `json:"fieldErrors"`
	FormErrors  []string            `json:"formErrors"`
}

func newFormErrors(ve validator.ValidationErrors) formErrors {
	fields := ve.Fields()
	if fields == nil {
		fields = map[string][]string{}
	}
	return formErrors{FormErrors: []string{}, FieldErrors: fields}
}
