package segment

import (
	"sort"
)

// Summary contains span counters of a single document.
type Summary struct {
	Spans      int            `json:"spans"`
	Bytes      int            `json:"bytes"`
	Categories map[string]int `json:"categories"`
	OtherSpans int            `json:"other_spans"`
	OtherBytes int            `json:"other_bytes"`
}

// Summarize counts spans per category.
func Summarize(spans []Span) Summary {
	result := Summary{Categories: make(map[string]int)}
	for _, s := range spans {
		result.Spans++
		result.Bytes += s.End - s.Start
		result.Categories[s.Category]++
		if s.Category == OtherCategory {
			result.OtherSpans++
			result.OtherBytes += s.End - s.Start
		}
	}
	return result
}

// OtherRatio returns the share of "other" spans, 0 for empty document.
// Documents with high ratio are likely decoded with a wrong encoding.
func (s Summary) OtherRatio() float64 {
	if s.Spans == 0 {
		return 0
	}
	return float64(s.OtherSpans) / float64(s.Spans)
}

// CategoryNames returns category names sorted by descending span count, then by name.
func (s Summary) CategoryNames() []string {
	result := make([]string, 0, len(s.Categories))
	for name := range s.Categories {
		result = append(result, name)
	}
	sort.Slice(result, func(i, j int) bool {
		ci, cj := s.Categories[result[i]], s.Categories[result[j]]
		if ci != cj {
			return ci > cj
		}
		return result[i] < result[j]
	})
	return result
}
