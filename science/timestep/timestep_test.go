package timestep

import "testing"

func TestGlobalMinimum(t *testing.T) {
	if got := GlobalMinimum(5.0, 2.0, 8.0); got != 2.0 {
		t.Errorf("GlobalMinimum(5,2,8) = %g, want 2", got)
	}
}

func TestGlobalMinimumSingleCandidate(t *testing.T) {
	if got := GlobalMinimum(42.0); got != 42.0 {
		t.Errorf("GlobalMinimum(42) = %g, want 42", got)
	}
}

func TestBootstrap(t *testing.T) {
	dtMax := 1e10
	got := Bootstrap(dtMax)
	want := dtMax * 1e-20
	if got != want {
		t.Errorf("Bootstrap(%g) = %g, want %g", dtMax, got, want)
	}
}
