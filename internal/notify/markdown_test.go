package notify

import "testing"

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"underscore and star", "a_b*c", "a\\_b\\*c"},
		{"brackets and parens", "[link](url)", "\\[link\\]\\(url\\)"},
		{"punctuation", "done. really!", "done\\. really\\!"},
		{"amount", "150,000 VND", "150,000 VND"},
		{"all reserved", "_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeMarkdown(tt.input); got != tt.want {
				t.Errorf("EscapeMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
