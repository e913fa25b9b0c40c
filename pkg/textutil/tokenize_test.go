package textutil

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercases and splits on punctuation", "Synth-Pop, Remixes!", []string{"synth", "pop", "remixes"}},
		{"drops single-char tokens", "a b guitar c", []string{"guitar"}},
		{"drops stop words", "the best of both worlds", []string{"best", "worlds"}},
		{"keeps digits", "top 10 tracks of 2024", []string{"10", "tracks", "2024"}},
		{"empty input", "", nil},
		{"only stop words", "the and of", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTermFrequencies(t *testing.T) {
	freqs := TermFrequencies([]string{"guitar", "drums", "guitar", "guitar"})
	if freqs["guitar"] != 3 {
		t.Errorf("guitar count = %d, want 3", freqs["guitar"])
	}
	if freqs["drums"] != 1 {
		t.Errorf("drums count = %d, want 1", freqs["drums"])
	}
}

func TestIsStopWord(t *testing.T) {
	if !IsStopWord("the") {
		t.Error(`IsStopWord("the") = false, want true`)
	}
	if IsStopWord("music") {
		t.Error(`IsStopWord("music") = true, want false`)
	}
}
