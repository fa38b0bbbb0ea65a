package smedit

import (
	"strings"
	"testing"
)

func TestVersion_EmbeddedIsSemver(t *testing.T) {
	if !IsSemver(Version()) {
		t.Fatalf("embedded version must be semver: got %q", Version())
	}
	if !IsSemver(devVersion) {
		t.Fatalf("dev version must be semver: got %q", devVersion)
	}
}

func TestDescribe(t *testing.T) {
	got := Describe("smedit")
	if !strings.HasPrefix(got, "smedit v"+Version()+" (go") {
		t.Fatalf("Describe=%q", got)
	}
}

func TestIsSemver(t *testing.T) {
	cases := []struct {
		version string
		want    bool
	}{
		{version: "0.1.0", want: true},
		{version: "1.2.3-alpha.1", want: true},
		{version: "2.0.0+build.7", want: true},
		{version: " 0.1.0\n", want: true},
		{version: "v1.2.3", want: false},
		{version: "1.2", want: false},
		{version: "01.2.3", want: false},
	}

	for _, tc := range cases {
		if got := IsSemver(tc.version); got != tc.want {
			t.Fatalf("IsSemver(%q)=%v, want %v", tc.version, got, tc.want)
		}
	}
}
