// Package horoscope fetches daily horoscope readings from the RapidAPI
// horoscope-astrology service.
//
// # Usage
//
//	client := horoscope.New(horoscope.Config{
//		APIKey: os.Getenv("RAPIDAPI_KEY"),
//	})
//
//	reading, err := client.Fetch(ctx, horoscope.Leo)
//	if err != nil {
//		return err
//	}
//	fmt.Println(reading.Text, reading.LuckyNumber)
//
// Every call issues exactly one request; readings are not cached.
//
// # Signs
//
// [Sign] holds one of the twelve lowercase zodiac identifiers used by the
// provider. [ParseSign] validates user input; [Client.Fetch] forwards whatever
// value it is given.
//
// # Errors
//
//   - ErrFetchFailed: transport failure or non-2xx response
//   - ErrParseFailed: response body is not a horoscope document
//   - ErrEmptyHoroscope: the provider answered without horoscope text
//   - ErrUnknownSign: ParseSign received an unrecognized identifier
package horoscope
