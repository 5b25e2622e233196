package horoscope

// Config holds horoscope provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey string `env:"RAPIDAPI_KEY"`
	Host   string `env:"HOROSCOPE_API_HOST" envDefault:"horoscope-astrology.p.rapidapi.com"`
	Day    string `env:"HOROSCOPE_DAY" envDefault:"today"`
}
