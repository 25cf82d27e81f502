package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrIncompatible is returned when the host is older than minAppVersion.
var ErrIncompatible = errors.New("extension requires a newer host")

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b. A leading "v" is ignored.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// CheckCompatibility reports whether m can run on hostVersion. Development
// builds ("dev" or empty) accept every manifest.
func CheckCompatibility(m *Manifest, hostVersion string) error {
	if hostVersion == "" || hostVersion == "dev" {
		return nil
	}
	cmp, err := CompareVersions(hostVersion, m.MinAppVersion)
	if err != nil {
		return err
	}
	if cmp < 0 {
		return fmt.Errorf("%w: %s needs %s, host is %s", ErrIncompatible, m.ID, m.MinAppVersion, hostVersion)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
