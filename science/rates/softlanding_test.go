package rates

import "testing"

func TestSoftLandingPassesThroughPositiveRates(t *testing.T) {
	if got := SoftLanding(5.0, 50, 100); got != 5.0 {
		t.Errorf("SoftLanding with a positive rate = %g, want unchanged 5.0", got)
	}
}

func TestSoftLandingZeroAtOrBelowFloor(t *testing.T) {
	if got := SoftLanding(-5.0, 100, 100); got != 0 {
		t.Errorf("SoftLanding at T == Tmin = %g, want 0", got)
	}
	if got := SoftLanding(-5.0, 50, 100); got != 0 {
		t.Errorf("SoftLanding below Tmin = %g, want 0", got)
	}
}

func TestSoftLandingRampsLinearlyOver200K(t *testing.T) {
	// Per spec §4.C's literal seed case: T = Tmin+50, rate -R => -R*50/200 = -R/4.
	got := SoftLanding(-4.0, 150, 100)
	want := -1.0
	if got != want {
		t.Errorf("SoftLanding(rate=-4, T=Tmin+50, Tmin=100) = %g, want %g", got, want)
	}
}

func TestSoftLandingUnchangedBeyondRampBand(t *testing.T) {
	if got := SoftLanding(-5.0, 500, 100); got != -5.0 {
		t.Errorf("SoftLanding beyond the 200K band = %g, want unchanged -5.0", got)
	}
}
