package textutil

import (
	"encoding/json"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `  {"a": 1}  `,
			want:  `{"a": 1}`,
		},
		{
			name:  "json fence with preamble",
			input: "Here you go:\n```json\n{\"a\": 1}\n```\nThanks",
			want:  `{"a": 1}`,
		},
		{
			name:  "plain fence",
			input: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "fence inside string value kept",
			input: "{\"tip\": \"use ```go blocks```\"}",
			want:  "{\"tip\": \"use ```go blocks```\"}",
		},
		{
			name:  "no fence",
			input: "no json here",
			want:  "no json here",
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.input); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeJSON(t *testing.T) {
	raw := "{\"reasoning\": \"line one\nline two\t\\\"quoted\\\"\",\n\"score\": 5}"
	var out struct {
		Reasoning string `json:"reasoning"`
		Score     int    `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		t.Fatal("expected raw input with literal newline in string to be invalid JSON")
	}
	if err := json.Unmarshal([]byte(SanitizeJSON(raw)), &out); err != nil {
		t.Fatalf("sanitized JSON did not parse: %v", err)
	}
	if out.Reasoning != "line one\nline two\t\"quoted\"" {
		t.Errorf("reasoning = %q", out.Reasoning)
	}
	if out.Score != 5 {
		t.Errorf("score = %d, want 5", out.Score)
	}
}

func TestFirstNumber(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"85", 85, true},
		{"Score: 72.5 out of 100", 72.5, true},
		{"  90\n", 90, true},
		{"I rate it 1000", 0, false},
		{"no digits", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := FirstNumber(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FirstNumber(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
