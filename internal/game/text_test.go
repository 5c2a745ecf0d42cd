package game

import "testing"

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"splits at width", "The quick brown fox jumps over the lazy dog", 20, "The quick brown fox\njumps over the lazy\ndog"},
		{"keeps paragraphs", "First line\n\nSecond line continues with extra words", 25, "First line\n\nSecond line continues\nwith extra words"},
		{"breaks long words", "ABCDEFGHIJKLMNOPQRSTUVWXYZ", 20, "ABCDEFGHIJKLMNOPQRST\nUVWXYZ"},
		{"markup is free", "|cfeathers|n and |gdown|n drift over the nest", 20, "|cfeathers|n and |gdown|n\ndrift over the nest"},
		{"narrow width clamps", "one two three four five six", 5, "one two three four\nfive six"},
		{"zero width untouched", "  keep   spacing ", 0, "  keep   spacing "},
		{"collapses spaces", "a   b", 20, "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapText(tt.in, tt.width); got != tt.want {
				t.Fatalf("WrapText(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
