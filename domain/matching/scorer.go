// Package matching implements the pure scoring function that ranks corpus
// passages against one analyzed entry. It performs no I/O and never mutates
// its inputs.
package matching

import (
	"sort"
	"strings"

	"moji-backend/domain/journal"
	"moji-backend/domain/literature"
)

// TopK is the number of ranked passages returned per submission.
const TopK = 3

// Composite score weights.
const (
	emotionWeight = 0.4
	keywordWeight = 0.3
	imageryWeight = 0.2
	sceneWeight   = 0.1
)

// Result is one scored passage. EmotionSimilarity, KeywordOverlap and
// ImageryMatch are persisted on the Match row; the scene sub-score only
// contributes to the composite.
type Result struct {
	Passage           *literature.Passage
	Score             float64
	EmotionSimilarity float64
	KeywordOverlap    float64
	ImageryMatch      float64
}

// RankPassages scores every passage against the analysis and returns at most
// TopK results ordered by descending composite score. An empty corpus yields
// an empty slice. Equal scores keep corpus iteration order (the corpus loads
// ordered by passage id, so ties resolve to the lowest id first).
func RankPassages(analysis *journal.EmotionAnalysis, passages []*literature.Passage) []Result {
	if len(passages) == 0 {
		return nil
	}

	emotionNames := analysis.EmotionNames()

	results := make([]Result, 0, len(passages))
	for _, p := range passages {
		emotionSimilarity := EmotionSimilarity(emotionNames, p.EmotionTags)
		keywordOverlap := Overlap(analysis.Keywords, union(p.EmotionTags, p.ThemeTags))
		imageryMatch := Overlap(analysis.Imagery, p.ImageryTags)
		sceneMatch := Overlap(analysis.Scenes, p.SceneTags)

		score := emotionWeight*emotionSimilarity +
			keywordWeight*keywordOverlap +
			imageryWeight*imageryMatch +
			sceneWeight*sceneMatch

		results = append(results, Result{
			Passage:           p,
			Score:             score,
			EmotionSimilarity: emotionSimilarity,
			KeywordOverlap:    keywordOverlap,
			ImageryMatch:      imageryMatch,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > TopK {
		results = results[:TopK]
	}
	return results
}

// EmotionSimilarity is the exact-match intersection ratio between the entry's
// emotion names and a passage's emotion tags, normalized by the entry side.
// Either side being empty yields 0.
func EmotionSimilarity(entryEmotions, passageEmotions []string) float64 {
	if len(entryEmotions) == 0 || len(passageEmotions) == 0 {
		return 0
	}
	tagSet := make(map[string]struct{}, len(passageEmotions))
	for _, t := range passageEmotions {
		tagSet[t] = struct{}{}
	}
	hits := 0
	for _, e := range entryEmotions {
		if _, ok := tagSet[e]; ok {
			hits++
		}
	}
	return float64(hits) / float64(max(len(entryEmotions), 1))
}

// Overlap is the case-insensitive intersection ratio of a over b, normalized
// by |a|. Either side being empty yields 0.
func Overlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	bSet := make(map[string]struct{}, len(b))
	for _, s := range b {
		bSet[strings.ToLower(s)] = struct{}{}
	}
	hits := 0
	for _, s := range a {
		if _, ok := bSet[strings.ToLower(s)]; ok {
			hits++
		}
	}
	return float64(hits) / float64(max(len(a), 1))
}

func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
