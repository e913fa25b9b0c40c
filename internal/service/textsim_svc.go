package service

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/mathieu-neron/TubeScout/tubescout-go/pkg/textutil"
)

const (
	// Blobs below this length (in characters) carry too little signal to
	// vectorize.
	minTextLength = 50
	// Vocabulary cap: only the highest-frequency terms enter the vectors.
	maxVocabularyTerms = 100
)

// TextSimilarityService scores the content similarity of two text blobs with
// TF-IDF vectors built over exactly that two-document corpus. Scores are
// query-local: they are comparable within one channel pair, not across pairs.
type TextSimilarityService struct{}

func NewTextSimilarityService() *TextSimilarityService {
	return &TextSimilarityService{}
}

// Compare returns the cosine similarity of the two blobs in [0,1]. The second
// return value is false when the signal is absent: either blob shorter than
// minTextLength, or no vocabulary survives tokenization and stop-word removal.
func (s *TextSimilarityService) Compare(a, b string) (float64, bool) {
	if utf8.RuneCountInString(a) < minTextLength || utf8.RuneCountInString(b) < minTextLength {
		return 0, false
	}

	tfA := textutil.TermFrequencies(textutil.Tokenize(a))
	tfB := textutil.TermFrequencies(textutil.Tokenize(b))

	vocab := buildVocabulary(tfA, tfB)
	if len(vocab) == 0 {
		return 0, false
	}

	vecA := vectorize(tfA, tfB, vocab)
	vecB := vectorize(tfB, tfA, vocab)

	return cosine(vecA, vecB), true
}

// buildVocabulary selects up to maxVocabularyTerms terms, highest combined
// frequency first. Ties break alphabetically so repeated runs over the same
// inputs produce identical vectors.
func buildVocabulary(tfA, tfB map[string]int) []string {
	combined := make(map[string]int, len(tfA)+len(tfB))
	for t, n := range tfA {
		combined[t] += n
	}
	for t, n := range tfB {
		combined[t] += n
	}

	terms := make([]string, 0, len(combined))
	for t := range combined {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if combined[terms[i]] != combined[terms[j]] {
			return combined[terms[i]] > combined[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > maxVocabularyTerms {
		terms = terms[:maxVocabularyTerms]
	}
	return terms
}

// vectorize builds the TF-IDF vector for the document with term counts tf,
// where other holds the counts of the second corpus document. IDF uses the
// smoothed form over the two-document corpus:
//
//	idf(t) = ln((1 + 2) / (1 + df(t))) + 1
func vectorize(tf, other map[string]int, vocab []string) []float64 {
	vec := make([]float64, len(vocab))
	for i, term := range vocab {
		count := tf[term]
		if count == 0 {
			continue
		}
		df := 1
		if other[term] > 0 {
			df = 2
		}
		idf := math.Log(3.0/float64(1+df)) + 1
		vec[i] = float64(count) * idf
	}
	return vec
}

func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Guard against float drift pushing identical vectors past 1.0
	return math.Min(sim, 1.0)
}
