package pipeline

import "github.com/dmitrymomot/horoscope/pkg/horoscope"

// Recipient is one entry of the mailing list.
type Recipient struct {
	Email    string         `json:"email" yaml:"email"`
	Sign     horoscope.Sign `json:"sign" yaml:"sign"`
	Language string         `json:"language,omitempty" yaml:"language,omitempty"`
}
