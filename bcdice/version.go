package bcdice

import (
	"context"
	"errors"
	"fmt"

	"github.com/blang/semver"
)

// ErrIncompatibleAPI is returned by CheckCompatibility when the server is older than required.
var ErrIncompatibleAPI = errors.New("incompatible BCDice-API version")

// CheckCompatibility fetches the server version and verifies it is at least
// minVersion. An empty minVersion accepts any server.
func CheckCompatibility(ctx context.Context, api API, minVersion string) (*APIVersion, error) {
	version, err := api.GetAPIVersion(ctx)
	if err != nil {
		return nil, err
	}
	if minVersion == "" {
		return version, nil
	}

	required, err := semver.ParseTolerant(minVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: minimum version %q: %v", ErrInvalidConfig, minVersion, err)
	}
	actual, err := semver.ParseTolerant(version.API)
	if err != nil {
		return nil, fmt.Errorf("%w: server reports unparsable version %q", ErrIncompatibleAPI, version.API)
	}
	if actual.LT(required) {
		return nil, fmt.Errorf("%w: server is v%s, need v%s or later", ErrIncompatibleAPI, actual, required)
	}
	return version, nil
}
