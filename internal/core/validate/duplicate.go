package validate

import (
	"math"

	"github.com/penwyp/go-activity-tracker/internal/core/model"
	"github.com/penwyp/go-activity-tracker/internal/util"
)

// DefaultDuplicateThreshold is the composite score at or above which a
// candidate is flagged as a duplicate.
const DefaultDuplicateThreshold = 80

// Composite score weights. Time overlap dominates: two records covering the
// same interval are duplicates even when their titles drifted.
const (
	weightTimeOverlap = 0.4
	weightTitle       = 0.3
	weightSourceType  = 0.2
	weightCategory    = 0.1
)

// DuplicateMatch is one candidate flagged as a likely duplicate
type DuplicateMatch struct {
	Activity model.Activity `json:"activity"`
	Score    int            `json:"score"`
}

// DuplicateResult is a read-only report over a candidate set; never
// persisted.
type DuplicateResult struct {
	HasDuplicates bool             `json:"hasDuplicates"`
	Duplicates    []DuplicateMatch `json:"duplicates"`
	MeanScore     float64          `json:"meanScore"`
}

// DetectDuplicates scores every candidate against the activity with a
// weighted composite of time overlap, title similarity, source type, and
// category agreement, each on a 0-100 scale. Candidates scoring at or above
// threshold are flagged; MeanScore is the mean over flagged candidates
// only. The activity itself (same id and source type) is excluded.
func DetectDuplicates(activity model.Activity, candidates []model.Activity, threshold int) DuplicateResult {
	result := DuplicateResult{Duplicates: []DuplicateMatch{}}

	var scoreSum int
	for _, candidate := range candidates {
		if candidate.ID == activity.ID && candidate.SourceType == activity.SourceType {
			continue
		}

		score := similarityScore(activity, candidate)
		if score >= threshold {
			result.HasDuplicates = true
			result.Duplicates = append(result.Duplicates, DuplicateMatch{
				Activity: candidate,
				Score:    score,
			})
			scoreSum += score
		}
	}

	if len(result.Duplicates) > 0 {
		result.MeanScore = float64(scoreSum) / float64(len(result.Duplicates))
	}

	return result
}

// similarityScore computes the weighted composite, rounded to the nearest
// integer.
func similarityScore(a, b model.Activity) int {
	score := weightTimeOverlap*timeOverlapPercent(a, b) +
		weightTitle*titleSimilarityPercent(a.Title, b.Title) +
		weightSourceType*matchPercent(a.SourceType == b.SourceType) +
		weightCategory*matchPercent(categoryMatches(a.CategoryID, b.CategoryID))

	return int(math.Round(score))
}

// timeOverlapPercent is the pairwise overlap duration as a percentage of
// the average of the two total durations; 0 when either total is 0 or a
// timestamp fails to parse.
func timeOverlapPercent(a, b model.Activity) float64 {
	aStart, err := parseTimestamp(a.StartTime)
	if err != nil {
		return 0
	}
	aEnd, err := parseTimestamp(a.EndTime)
	if err != nil {
		return 0
	}
	bStart, err := parseTimestamp(b.StartTime)
	if err != nil {
		return 0
	}
	bEnd, err := parseTimestamp(b.EndTime)
	if err != nil {
		return 0
	}

	s1, e1 := aStart.Unix(), aEnd.Unix()
	s2, e2 := bStart.Unix(), bEnd.Unix()

	d1 := e1 - s1
	d2 := e2 - s2
	if d1 <= 0 || d2 <= 0 {
		return 0
	}

	overlap := overlapSeconds(s1, e1, s2, e2)
	average := float64(d1+d2) / 2
	return 100 * float64(overlap) / average
}

// titleSimilarityPercent scales the normalized Levenshtein similarity to
// 0-100: identical titles score 100, an empty title against a non-empty
// one scores 0.
func titleSimilarityPercent(a, b string) float64 {
	return 100 * util.TitleSimilarity(a, b)
}

func matchPercent(match bool) float64 {
	if match {
		return 100
	}
	return 0
}

// categoryMatches treats two absent categories as agreement, mirroring how
// the records compare when neither has been categorized.
func categoryMatches(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
