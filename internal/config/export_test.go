package config

// Parse exposes parse to external tests.
var Parse = parse
