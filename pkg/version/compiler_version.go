// Copyright (C) 2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package version

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// MinCompilerVersion is the oldest solc release explorers accept for verification
const MinCompilerVersion = "v0.4.11"

var ErrInvalidCompilerVersion = errors.New("invalid compiler version")

// NormalizeCompilerVersion checks [version] names a full solc release, as in
// v0.8.24+commit.e11b9ed9, and returns it with the v prefix
func NormalizeCompilerVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	// Add 'v' prefix if missing
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return "", fmt.Errorf("%w: %q is not a semantic version", ErrInvalidCompilerVersion, version)
	}
	if !strings.HasPrefix(semver.Build(version), "+commit.") {
		return "", fmt.Errorf("%w: %q has no commit, expected something like v0.8.24+commit.e11b9ed9", ErrInvalidCompilerVersion, version)
	}
	if semver.Compare(version, MinCompilerVersion) == -1 {
		return "", fmt.Errorf("%w: %s is older than %s", ErrInvalidCompilerVersion, version, MinCompilerVersion)
	}
	return version, nil
}
