// Package smedit hosts a SevenMark editing core: a UTF-16 text buffer, an
// engine adapter and the tree-driven operations built on it.
package smedit

import (
	_ "embed"
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// devVersion stands in when VERSION is empty.
const devVersion = "0.0.0-dev"

// Version returns the smedit version in SemVer form, without a leading v.
func Version() string {
	if v := strings.TrimSpace(embeddedVersion); v != "" {
		return v
	}
	return devVersion
}

func VersionTag() string {
	return "v" + Version()
}

// Describe is the one-line banner printed by the binaries' -version flag.
func Describe(program string) string {
	return fmt.Sprintf("%s %s (%s %s/%s)", program, VersionTag(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}
