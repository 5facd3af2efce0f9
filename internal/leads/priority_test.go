package leads

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		budget    string
		wantLabel string
		wantColor string
	}{
		{"premium bucket", "₹10L+", PriorityHigh, "#ffd700"},
		{"high bucket", "₹5L - ₹10L", PriorityMedium, "#ffe699"},
		{"low bucket", "₹2L - ₹5L", PriorityStandard, "#f0f0f0"},
		{"empty budget", "", PriorityStandard, "#f0f0f0"},
		{"unrecognized value", "10L+", PriorityStandard, "#f0f0f0"},
		{"case difference falls through", "₹10l+", PriorityStandard, "#f0f0f0"},
		{"whitespace falls through", " ₹10L+", PriorityStandard, "#f0f0f0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := Classify(tt.budget)
			if tier.Label != tt.wantLabel {
				t.Errorf("expected label %q, got %q", tt.wantLabel, tier.Label)
			}
			if tier.Color != tt.wantColor {
				t.Errorf("expected color %q, got %q", tt.wantColor, tier.Color)
			}
		})
	}
}

func TestIsPremium(t *testing.T) {
	if !IsPremium("₹10L+") || !IsPremium("₹5L - ₹10L") {
		t.Fatal("expected both premium buckets to qualify")
	}
	if IsPremium("") || IsPremium("Standard") || IsPremium("₹10L+ ") {
		t.Fatal("expected non-premium values to not qualify")
	}
}
