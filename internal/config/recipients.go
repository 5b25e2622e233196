package config

import (
	"bytes"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/horoscope/internal/pipeline"
	"github.com/dmitrymomot/horoscope/pkg/horoscope"
)

type recipientsFile struct {
	Recipients []recipientEntry `yaml:"recipients"`
}

type recipientEntry struct {
	Email    string `yaml:"email"`
	Sign     string `yaml:"sign"`
	Language string `yaml:"language"`
}

// LoadRecipients reads and validates the recipient list at path.
// Entries without a language get defaultLanguage.
func LoadRecipients(path, defaultLanguage string) ([]pipeline.Recipient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read recipients: %w", err)
	}
	return ParseRecipients(data, defaultLanguage)
}

// ParseRecipients validates a YAML recipient list:
//
//	recipients:
//	  - email: ana@example.ro
//	    sign: leo
//	    language: ro
func ParseRecipients(data []byte, defaultLanguage string) ([]pipeline.Recipient, error) {
	var file recipientsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	if len(file.Recipients) == 0 {
		return nil, ErrNoRecipients
	}

	seen := make(map[string]int, len(file.Recipients))
	out := make([]pipeline.Recipient, 0, len(file.Recipients))

	for i, entry := range file.Recipients {
		addr, err := mail.ParseAddress(strings.TrimSpace(entry.Email))
		if err != nil {
			return nil, fmt.Errorf("%w #%d: email %q: %v", ErrInvalidRecipient, i+1, entry.Email, err)
		}

		key := strings.ToLower(addr.Address)
		if first, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s (entries #%d and #%d)", ErrDuplicateEmail, addr.Address, first, i+1)
		}
		seen[key] = i + 1

		sign, err := horoscope.ParseSign(entry.Sign)
		if err != nil {
			return nil, fmt.Errorf("%w #%d: %w", ErrInvalidRecipient, i+1, err)
		}

		lang := strings.TrimSpace(entry.Language)
		if lang == "" {
			lang = defaultLanguage
		}
		if _, err := language.Parse(lang); err != nil {
			return nil, fmt.Errorf("%w #%d: language %q: %v", ErrInvalidRecipient, i+1, lang, err)
		}

		out = append(out, pipeline.Recipient{Email: addr.Address, Sign: sign, Language: lang})
	}

	return out, nil
}
