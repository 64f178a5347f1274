package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionFormat(t *testing.T) {
	if !semverRegex.MatchString(Version) {
		t.Errorf("Version %q does not match semver format (x.y.z)", Version)
	}
	if ScriptVersion != 1 {
		t.Errorf("ScriptVersion = %d, want 1", ScriptVersion)
	}
}

func TestShort(t *testing.T) {
	want := "sccalc v" + Version
	if got := Short(); got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}
}

func TestInfo(t *testing.T) {
	info := Info()

	tests := []struct {
		name string
		want string
	}{
		{"banner", Short()},
		{"commit", "Git Commit:     " + GitCommit},
		{"script version", "Script Version: 1"},
		{"go version", runtime.Version()},
		{"platform", runtime.GOOS + "/" + runtime.GOARCH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(info, tt.want) {
				t.Errorf("Info() missing %q in:\n%s", tt.want, info)
			}
		})
	}
}
