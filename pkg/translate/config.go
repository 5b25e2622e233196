package translate

// DefaultSourceLanguage is the language horoscope texts arrive in.
const DefaultSourceLanguage = "en"

// Config holds translation provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey         string `env:"RAPIDAPI_KEY"`
	Host           string `env:"TRANSLATE_API_HOST" envDefault:"google-translate113.p.rapidapi.com"`
	Path           string `env:"TRANSLATE_API_PATH" envDefault:"/api/v1/translator/json"`
	SourceLanguage string `env:"TRANSLATE_SOURCE_LANGUAGE" envDefault:"en"`
}
