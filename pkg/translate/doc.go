// Package translate translates short texts through a Google-Translate-compatible
// RapidAPI endpoint.
//
// Translating into the source language is a no-op: the text is returned
// unchanged and no request is sent.
//
//	client := translate.New(translate.Config{
//		APIKey: os.Getenv("RAPIDAPI_KEY"),
//		Host:   "google-translate113.p.rapidapi.com",
//	})
//
//	ro, err := client.Translate(ctx, "Great day ahead", "ro")
package translate
