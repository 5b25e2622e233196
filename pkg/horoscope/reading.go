package horoscope

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Reading is a single daily horoscope for one sign.
type Reading struct {
	Sign        Sign
	Date        string
	Text        string
	LuckyNumber LuckyNumber
}

// LuckyNumber is the provider's lucky number. The API is inconsistent about
// its type, so both JSON strings and numbers are accepted and kept verbatim.
type LuckyNumber string

// UnmarshalJSON implements json.Unmarshaler.
func (n *LuckyNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = LuckyNumber(s)
		return nil
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("lucky_number: %w", err)
		}
		*n = LuckyNumber(num.String())
		return nil
	}
}

func (n LuckyNumber) String() string {
	return string(n)
}

// apiResponse is the provider's wire format.
type apiResponse struct {
	Date        string      `json:"date"`
	Sunsign     string      `json:"sunsign"`
	Horoscope   string      `json:"horoscope"`
	LuckyNumber LuckyNumber `json:"lucky_number"`
}
