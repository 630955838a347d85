package buildinfo

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Set through -ldflags "-X github.com/Elysium-Labs-EU/graphctl/internal/buildinfo.Version=..." at release time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const devVersion = "v0.0.0-dev"

func Get() string {
	return fmt.Sprintf("graphctl %s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}

func GetVersionOnly() string {
	return Version
}

// ClientVersion is the version reported to the registry. Untagged builds
// report v0.0.0-dev.
func ClientVersion() string {
	return canonicalVersion(Version)
}

func canonicalVersion(version string) string {
	if version != "" && version[0] != 'v' {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return devVersion
	}
	return semver.Canonical(version)
}
