package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	From     string `env:"MAIL_FROM"`
	FromName string `env:"MAIL_FROM_NAME"`
}

// DefaultFrom returns the formatted default sender address.
func (c Config) DefaultFrom() string {
	return Recipient(c.FromName, c.From)
}
