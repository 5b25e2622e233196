// Package pipeline delivers one horoscope email per recipient and runs
// those deliveries concurrently over a recipient list.
//
// A delivery is fetch, then translate (skipped when the recipient reads the
// source language), then compose, then dispatch. Any stage error stops that
// recipient's delivery and is recorded in its Outcome; other recipients are
// unaffected.
package pipeline
