package profile

import "testing"

func TestMake_AppliesOptions(t *testing.T) {
	t.Parallel()

	mode, path, quiet := Make(WithMode("cpu"), WithPath("/tmp/p"), WithQuiet(true))()

	if mode != "cpu" || path != "/tmp/p" || !quiet {
		t.Errorf("Make() = (%q, %q, %v)", mode, path, quiet)
	}
}

func TestStart_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	s := Make(WithPath(t.TempDir())).Start()
	if _, ok := s.(ignore); !ok {
		t.Fatalf("Start() = %T, want ignore", s)
	}

	s.Stop()
}

func TestStart_UnknownModeIsNoop(t *testing.T) {
	t.Parallel()

	s := Make(WithMode("bogus")).Start()
	if _, ok := s.(ignore); !ok {
		t.Fatalf("Start() = %T, want ignore", s)
	}
}
