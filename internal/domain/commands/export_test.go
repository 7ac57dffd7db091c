package commands

// SplitSpec exports splitSpec for testing.
var SplitSpec = splitSpec //nolint:gochecknoglobals // test export
