package middleware

import (
	"strings"
	"testing"
)

func TestValidateChannelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid", "UCqVDpXKLmKeBU_yyt_QkItQ", "UCqVDpXKLmKeBU_yyt_QkItQ", false},
		{"valid with dash", "UC-lHJZR3Gqxm24_Vd_AJ5Yw", "UC-lHJZR3Gqxm24_Vd_AJ5Yw", false},
		{"trims whitespace", "  UCabc  ", "UCabc", false},
		{"empty", "", "", true},
		{"too long", strings.Repeat("a", 33), "", true},
		{"invalid chars", "UC abc", "", true},
		{"sql injection", "UC'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateChannelID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateDecision(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"approve", "approve", false},
		{"reject", "reject", false},
		{"unsubscribe", "unsubscribe", false},
		{"skip", "skip", false},
		{"APPROVE", "approve", false},
		{" approve ", "approve", false},
		{"", "", true},
		{"delete", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, errMsg := ValidateDecision(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateSource(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"spotify", "spotify", false},
		{"youtube", "youtube", false},
		{"all", "all", false},
		{"", "all", false},
		{"Spotify", "spotify", false},
		{"soundcloud", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, errMsg := ValidateSource(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateLimitAndOffset(t *testing.T) {
	if got := ValidateLimit(0, 20); got != 20 {
		t.Errorf("unset limit: got %d, want 20", got)
	}
	if got := ValidateLimit(-5, 20); got != 20 {
		t.Errorf("negative limit: got %d, want 20", got)
	}
	if got := ValidateLimit(500, 20); got != MaxLimit {
		t.Errorf("oversized limit: got %d, want %d", got, MaxLimit)
	}
	if got := ValidateLimit(42, 20); got != 42 {
		t.Errorf("valid limit: got %d, want 42", got)
	}
	if got := ValidateOffset(-1); got != 0 {
		t.Errorf("negative offset: got %d, want 0", got)
	}
	if got := ValidateOffset(37); got != 37 {
		t.Errorf("valid offset: got %d, want 37", got)
	}
}

func TestValidateLabels(t *testing.T) {
	labels, errMsg := ValidateLabels([]string{" Techno ", "", "Hip Hop", "Drum & Bass"})
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	want := []string{"Techno", "Hip Hop", "Drum & Bass"}
	if len(labels) != len(want) {
		t.Fatalf("got %d labels, want %d", len(labels), len(want))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d: got %q, want %q", i, labels[i], want[i])
		}
	}

	if _, errMsg := ValidateLabels([]string{strings.Repeat("x", 41)}); errMsg == "" {
		t.Error("expected error for oversized label")
	}
	if _, errMsg := ValidateLabels([]string{"bad<script>"}); errMsg == "" {
		t.Error("expected error for invalid characters")
	}
	if _, errMsg := ValidateLabels(make([]string, 11)); errMsg == "" {
		t.Error("expected error for too many labels")
	}
}
