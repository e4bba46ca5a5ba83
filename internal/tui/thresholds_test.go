package tui

import "testing"

func TestThreshold_SuccessRate(t *testing.T) {
	cases := []struct {
		pct  float64
		want severity
	}{
		{100, severityNormal},
		{90, severityNormal}, // boundary: <90 triggers warning
		{89.9, severityWarning},
		{75, severityWarning}, // boundary: <75 triggers critical
		{74.9, severityCritical},
		{0, severityCritical},
	}
	for _, tc := range cases {
		got := successRateSeverity(tc.pct)
		if got != tc.want {
			t.Errorf("successRateSeverity(%v) = %v, want %v", tc.pct, got, tc.want)
		}
	}
}

func TestThreshold_AnomalyCount(t *testing.T) {
	cases := []struct {
		n    int
		want severity
	}{
		{0, severityNormal},
		{1, severityWarning},
		{4, severityWarning},
		{5, severityCritical},
		{10, severityCritical},
	}
	for _, tc := range cases {
		got := anomalyCountSeverity(tc.n)
		if got != tc.want {
			t.Errorf("anomalyCountSeverity(%v) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestSeverityFg(t *testing.T) {
	if got := severityFg(severityNormal, colorBlue); got != colorBlue {
		t.Errorf("normal severity should keep the base color, got %v", got)
	}
	if got := severityFg(severityWarning, colorBlue); got != colorYellow {
		t.Errorf("warning = %v, want yellow", got)
	}
	if got := severityFg(severityCritical, colorBlue); got != colorRed {
		t.Errorf("critical = %v, want red", got)
	}
}
