package pkg

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	v := Version()
	if v == "" || strings.ContainsAny(v, " \n\t") {
		t.Fatalf("Version() = %q", v)
	}

	if got := SemVer().String(); got != v {
		t.Errorf("SemVer() = %q, want %q", got, v)
	}
}

func TestConfigPath(t *testing.T) {
	t.Parallel()

	got := ConfigPath("config.yaml")
	if filepath.Base(got) != "config.yaml" {
		t.Errorf("ConfigPath base = %q", filepath.Base(got))
	}

	if filepath.Dir(got) != ConfigDir() {
		t.Errorf("ConfigPath dir = %q, want %q", filepath.Dir(got), ConfigDir())
	}
}

func TestDebugBinPattern(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"__debug_bin":     true,
		"__debug_bin1234": true,
		"quark":           false,
		"x__debug_bin":    false,
	} {
		if got := debugBin.MatchString(in); got != want {
			t.Errorf("debugBin.MatchString(%q) = %v, want %v", in, got, want)
		}
	}
}
