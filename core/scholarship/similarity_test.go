package scholarship

import "testing"

func Test_LevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "both empty", a: "", b: "", want: 0},
		{name: "empty vs word", a: "", b: "grant", want: 5},
		{name: "identical", a: "scholarship", b: "scholarship", want: 0},
		{name: "kitten sitting", a: "kitten", b: "sitting", want: 3},
		{name: "single substitution", a: "fond", b: "fund", want: 1},
		{name: "insertion", a: "merit", b: "merits", want: 1},
		{name: "case differs", a: "Fulbright", b: "fulbright", want: 1},
		{name: "unicode", a: "काठमाडौं", b: "काठमाडौ", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevenshteinDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("LevenshteinDistance(%q, %q) = %d; want %d", tt.a, tt.b, got, tt.want)
			}
			// edit distance is symmetric
			if got := LevenshteinDistance(tt.b, tt.a); got != tt.want {
				t.Errorf("LevenshteinDistance(%q, %q) = %d; want %d", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func Test_SimilarityScore(t *testing.T) {
	// identical strings always score 100, the empty string included
	for _, s := range []string{"", "a", "Merit Scholarship", "काठमाडौं"} {
		if got := SimilarityScore(s, s); got != 100 {
			t.Errorf("SimilarityScore(%q, %q) = %v; want 100", s, s, got)
		}
	}

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "nothing in common", a: "abcd", b: "wxyz", want: 0},
		{name: "one of five differs", a: "merit", b: "marit", want: 80},
		{name: "empty vs non-empty", a: "", b: "ab", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimilarityScore(tt.a, tt.b); got != tt.want {
				t.Errorf("SimilarityScore(%q, %q) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
