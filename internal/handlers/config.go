package handlers

// Config tunes response content that is not tied to a backing service.
type Config struct {
	// Env is APP_ENV. "development" adds error details to mail failures.
	Env             string `env:"APP_ENV" envDefault:"production"`
	YearsExperience int    `env:"YEARS_EXPERIENCE" envDefault:"18"`
	ReviewsFallback int    `env:"REVIEWS_FALLBACK_COUNT" envDefault:"20"`
	// PatientsFallback is served when the counter store cannot be read.
	PatientsFallback int64 `env:"DEFAULT_PATIENT_COUNT" envDefault:"400"`
}

// Development reports whether APP_ENV is "development".
func (c Config) Development() bool { return c.Env == "development" }
