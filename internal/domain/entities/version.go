package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	maxVersionSegments = 3
	rangeOperators     = "^~=v"
)

// Version is a declared version string together with its canonical semver form.
//
// Parsing rules:
//   - leading range operators (^, ~, =) and a "v" prefix are ignored;
//   - the core is one to three dot-separated unsigned integers, missing
//     trailing segments count as 0 ("1.2" orders like "1.2.0");
//   - a pre-release suffix ("-beta.1") orders below its base release;
//   - build metadata ("+sha") does not take part in ordering.
type Version struct {
	Raw       string
	canonical string
}

// ParseVersion parses a declared version. The returned error wraps
// ErrInvalidVersionFormat.
func ParseVersion(raw string) (Version, error) {
	trimmed := strings.TrimLeft(strings.TrimSpace(raw), rangeOperators)
	if trimmed == "" {
		return Version{}, fmt.Errorf("%w: %q has no segments", ErrInvalidVersionFormat, raw)
	}

	core, suffix := trimmed, ""
	if idx := strings.IndexAny(trimmed, "-+"); idx >= 0 {
		core, suffix = trimmed[:idx], trimmed[idx:]
	}

	segments := strings.Split(core, ".")
	if len(segments) > maxVersionSegments {
		return Version{}, fmt.Errorf(
			"%w: %q has more than %d segments", ErrInvalidVersionFormat, raw, maxVersionSegments,
		)
	}

	var numbers [maxVersionSegments]uint64
	for i, segment := range segments {
		number, err := strconv.ParseUint(segment, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf(
				"%w: segment %q of %q is not numeric", ErrInvalidVersionFormat, segment, raw,
			)
		}
		numbers[i] = number
	}

	canonical := fmt.Sprintf("v%d.%d.%d%s", numbers[0], numbers[1], numbers[2], suffix)
	if !semver.IsValid(canonical) {
		return Version{}, fmt.Errorf("%w: %q has an invalid suffix", ErrInvalidVersionFormat, raw)
	}

	return Version{Raw: raw, canonical: canonical}, nil
}

// Canonical returns the normalised "vMAJOR.MINOR.PATCH[-pre][+build]" form.
func (v Version) Canonical() string { return v.canonical }

// CompareVersions returns -1, 0 or +1 following semantic version precedence.
func CompareVersions(a, b Version) int {
	return semver.Compare(a.canonical, b.canonical)
}

// HighestVersion returns the highest of the given declared versions.
//
// Versions that cannot be parsed are left out of the selection and reported
// through the returned error (one ErrInvalidVersionFormat per version); the
// highest valid version is still returned alongside it. When two versions
// compare equal the one listed last wins. An empty string is returned when no
// version is valid.
func HighestVersion(versions []string) (string, error) {
	var (
		highest Version
		found   bool
		errs    []error
	)

	for _, raw := range versions {
		version, err := ParseVersion(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !found || CompareVersions(version, highest) >= 0 {
			highest = version
			found = true
		}
	}

	return highest.Raw, errors.Join(errs...)
}
