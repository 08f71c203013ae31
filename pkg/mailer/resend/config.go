package resend

// Config holds Resend API configuration, used when MAIL_TRANSPORT=resend.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"FROM_EMAIL"`
	SenderName  string `env:"FROM_NAME"`
}
