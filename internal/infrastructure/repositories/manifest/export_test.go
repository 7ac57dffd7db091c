package manifest

// EscapePath exports escapePath for testing.
var EscapePath = escapePath //nolint:gochecknoglobals // test export
