package version

import (
	"strings"
	"testing"
)

type build struct {
	version, commit, branch, time, goVersion string
}

// setBuild overrides the ldflags variables for the duration of the test.
func setBuild(t *testing.T, b build) {
	t.Helper()
	prev := build{Version, GitCommit, GitBranch, BuildTime, GoVersion}
	Version, GitCommit, GitBranch, BuildTime, GoVersion = b.version, b.commit, b.branch, b.time, b.goVersion
	t.Cleanup(func() {
		Version, GitCommit, GitBranch, BuildTime, GoVersion = prev.version, prev.commit, prev.branch, prev.time, prev.goVersion
	})
}

func TestGetVersionInfo(t *testing.T) {
	tests := []struct {
		name    string
		build   build
		release bool
		year    int
	}{
		{"dev", build{version: "dev"}, false, 0},
		{"release", build{"0.4.0", "9f2c1e7", "main", "2025-03-02T08:00:00Z", "go1.26.0"}, true, 2025},
		{"dirty", build{version: "0.4.0-dirty"}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, tt.build)

			info := GetVersionInfo()
			if info.Version != tt.build.version {
				t.Errorf("expected version %q, got %q", tt.build.version, info.Version)
			}
			if info.IsRelease != tt.release {
				t.Errorf("expected IsRelease %v, got %v", tt.release, info.IsRelease)
			}
			if info.BuildDate.IsZero() {
				t.Error("expected a build date")
			}
			if tt.year != 0 && info.BuildDate.Year() != tt.year {
				t.Errorf("expected build year %d, got %d", tt.year, info.BuildDate.Year())
			}
			if tt.build.commit != "" && info.GitCommit != tt.build.commit {
				t.Errorf("expected commit %q, got %q", tt.build.commit, info.GitCommit)
			}
			if tt.build.goVersion != "" && info.GoVersion != tt.build.goVersion {
				t.Errorf("expected go version %q, got %q", tt.build.goVersion, info.GoVersion)
			}
		})
	}
}

func TestGetShortVersion(t *testing.T) {
	setBuild(t, build{version: "0.4.0", commit: "9f2c1e7", time: "2025-03-02T08:00:00Z"})
	if sv := GetShortVersion(); sv != "0.4.0-9f2c1e7" {
		t.Errorf("expected 0.4.0-9f2c1e7, got %q", sv)
	}
}

func TestGetShortVersion_Dev(t *testing.T) {
	setBuild(t, build{version: "dev"})
	if sv := GetShortVersion(); !strings.HasPrefix(sv, "dev") {
		t.Errorf("expected a dev version, got %q", sv)
	}
}

func TestGetFullVersion(t *testing.T) {
	tests := []struct {
		name    string
		build   build
		want    []string
		exclude string
	}{
		{"main branch", build{"0.4.0", "9f2c1e7", "main", "2025-03-02T08:00:00Z", ""}, []string{"0.4.0-9f2c1e7", "(built 2025-03-02"}, "main"},
		{"feature branch", build{"0.4.0", "9f2c1e7", "tls-alerts", "2025-03-02T08:00:00Z", ""}, []string{"9f2c1e7-tls-alerts"}, ""},
		{"no commit", build{version: "dev"}, []string{"dev"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, tt.build)

			fv := GetFullVersion()
			for _, w := range tt.want {
				if !strings.Contains(fv, w) {
					t.Errorf("expected %q in %q", w, fv)
				}
			}
			if tt.exclude != "" && strings.Contains(fv, tt.exclude) {
				t.Errorf("expected no %q in %q", tt.exclude, fv)
			}
		})
	}
}

func TestGetVersionInfo_Taxonomy(t *testing.T) {
	info := GetVersionInfo()
	if info.Kinds != 27 {
		t.Errorf("expected 27 error kinds, got %d", info.Kinds)
	}
	if strings.Join(info.Encodings, ",") != "xdr,json,yaml" {
		t.Errorf("expected xdr,json,yaml, got %v", info.Encodings)
	}
}

func TestInfo_Fields(t *testing.T) {
	setBuild(t, build{version: "1.2.3"})

	f := GetVersionInfo().Fields()
	if f["version"] != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %v", f["version"])
	}
	if f["kinds"] != 27 {
		t.Errorf("expected 27 kinds, got %v", f["kinds"])
	}
}
