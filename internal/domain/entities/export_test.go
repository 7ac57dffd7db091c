package entities

// ExpandEnvVars exports expandEnvVars for testing.
var ExpandEnvVars = expandEnvVars //nolint:gochecknoglobals // test export
