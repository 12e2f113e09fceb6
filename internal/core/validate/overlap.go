package validate

import (
	"github.com/penwyp/go-activity-tracker/internal/core/model"
)

// OverlapEntry records one candidate whose interval intersects the
// activity's interval.
type OverlapEntry struct {
	Activity       model.Activity `json:"activity"`
	OverlapSeconds int64          `json:"overlapSeconds"`
}

// OverlapResult is a read-only report over a candidate set; never persisted.
type OverlapResult struct {
	HasOverlap          bool           `json:"hasOverlap"`
	Overlaps            []OverlapEntry `json:"overlaps"`
	TotalOverlapSeconds int64          `json:"totalOverlapSeconds"`
}

// CheckOverlap reports every candidate whose half-open interval [s2,e2)
// intersects the activity's [s1,e1): overlap iff s1 < e2 and e1 > s2. The
// activity itself (same id and source type) is excluded. Candidates with
// unparseable timestamps are skipped; they are surfaced by ValidateActivity
// instead.
func CheckOverlap(activity model.Activity, candidates []model.Activity) OverlapResult {
	result := OverlapResult{Overlaps: []OverlapEntry{}}

	start, err := parseTimestamp(activity.StartTime)
	if err != nil {
		return result
	}
	end, err := parseTimestamp(activity.EndTime)
	if err != nil {
		return result
	}
	s1, e1 := start.Unix(), end.Unix()

	for _, candidate := range candidates {
		if candidate.ID == activity.ID && candidate.SourceType == activity.SourceType {
			continue
		}

		cStart, err := parseTimestamp(candidate.StartTime)
		if err != nil {
			continue
		}
		cEnd, err := parseTimestamp(candidate.EndTime)
		if err != nil {
			continue
		}
		s2, e2 := cStart.Unix(), cEnd.Unix()

		if overlap := overlapSeconds(s1, e1, s2, e2); overlap > 0 {
			result.HasOverlap = true
			result.Overlaps = append(result.Overlaps, OverlapEntry{
				Activity:       candidate,
				OverlapSeconds: overlap,
			})
			result.TotalOverlapSeconds += overlap
		}
	}

	return result
}

// overlapSeconds returns min(e1,e2) - max(s1,s2) when positive, else 0
func overlapSeconds(s1, e1, s2, e2 int64) int64 {
	if s1 >= e2 || e1 <= s2 {
		return 0
	}

	latestStart := s1
	if s2 > latestStart {
		latestStart = s2
	}
	earliestEnd := e1
	if e2 < earliestEnd {
		earliestEnd = e2
	}

	if earliestEnd <= latestStart {
		return 0
	}
	return earliestEnd - latestStart
}
