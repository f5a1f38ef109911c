package domain

import "testing"

func TestParsePoliticalLean(t *testing.T) {
	tests := []struct {
		in   string
		want PoliticalLean
	}{
		{"far_left", LeanFarLeft},
		{"center", LeanCenter},
		{"far_right", LeanFarRight},
		{"unknown", LeanUnknown},
		{"", LeanUnknown},
		{"centrist", LeanUnknown},
	}
	for _, tt := range tests {
		if got := ParsePoliticalLean(tt.in); got != tt.want {
			t.Errorf("ParsePoliticalLean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPoliticalLeanScaleIndex(t *testing.T) {
	if idx, ok := LeanFarLeft.ScaleIndex(); !ok || idx != 0 {
		t.Errorf("far_left index = %d, %v", idx, ok)
	}
	if idx, ok := LeanFarRight.ScaleIndex(); !ok || idx != 6 {
		t.Errorf("far_right index = %d, %v", idx, ok)
	}
	if _, ok := LeanUnknown.ScaleIndex(); ok {
		t.Error("unknown should have no scale index")
	}
	var zero PoliticalLean
	if _, ok := zero.ScaleIndex(); ok {
		t.Error("zero value should have no scale index")
	}
}

func TestParsePolicyFrame(t *testing.T) {
	if f, ok := ParsePolicyFrame("economic"); !ok || f != FrameEconomic {
		t.Errorf("ParsePolicyFrame(economic) = %q, %v", f, ok)
	}
	if _, ok := ParsePolicyFrame("vibes"); ok {
		t.Error("unexpected frame accepted")
	}
}

func TestParseStakeholderType(t *testing.T) {
	if st := ParseStakeholderType("journalist"); st != StakeholderJournalist {
		t.Errorf("got %q", st)
	}
	if st := ParseStakeholderType("alien"); st != StakeholderOther {
		t.Errorf("unrecognized stakeholder = %q, want other", st)
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestZeroAnnotationIsValid(t *testing.T) {
	var a PerspectiveAnnotation
	if _, ok := a.PoliticalLean.ScaleIndex(); ok {
		t.Error("zero lean must not be on the scale")
	}
	if len(a.PolicyFrames) != 0 {
		t.Error("zero annotation must have no frames")
	}
}
