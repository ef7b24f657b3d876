package skills

import "strings"

// Badges returned by Badge for a match percentage.
const (
	// BadgeStrong is given from 80 percent up.
	BadgeStrong = "strong"
	// BadgeGood is given from 50 percent up.
	BadgeGood = "good"
	// BadgeLow is everything below 50 percent.
	BadgeLow = "low"
)

// Result describes how a candidate's skills cover a target skill list.
// Matches keeps candidate casing and order, Missing keeps target casing and order.
type Result struct {
	Percentage int      `json:"percentage"`
	Matches    []string `json:"matches"`
	Missing    []string `json:"missing"`
}

// Match scores candidate skills against target skills. Comparison ignores case only.
// A target without any skills is a perfect match with empty Matches and Missing.
//
// Each distinct target skill is counted once, so duplicated entries on either
// side never move the percentage.
func Match(candidate, target Input) Result {
	targetSkills := Parse(target)
	candidateSkills := Parse(candidate)

	if len(targetSkills) == 0 {
		return Result{Percentage: 100, Matches: []string{}, Missing: []string{}}
	}

	required := foldSet(targetSkills)
	offered := foldSet(candidateSkills)

	matches := make([]string, 0, len(candidateSkills))
	covered := make(map[string]struct{}, len(required))
	for _, skill := range candidateSkills {
		key := fold(skill)
		if _, ok := required[key]; !ok {
			continue
		}
		if _, dup := covered[key]; dup {
			continue
		}
		covered[key] = struct{}{}
		matches = append(matches, skill)
	}

	missing := make([]string, 0, len(targetSkills))
	reported := make(map[string]struct{})
	for _, skill := range targetSkills {
		key := fold(skill)
		if _, ok := offered[key]; ok {
			continue
		}
		if _, dup := reported[key]; dup {
			continue
		}
		reported[key] = struct{}{}
		missing = append(missing, skill)
	}

	return Result{
		Percentage: percentage(len(covered), len(required)),
		Matches:    matches,
		Missing:    missing,
	}
}

// MatchStrings is Match for callers that already hold string slices.
func MatchStrings(candidate, target []string) Result {
	return Match(Strings(candidate), Strings(target))
}

// Badge classifies a match percentage for display.
func Badge(percentage int) string {
	switch {
	case percentage >= 80:
		return BadgeStrong
	case percentage >= 50:
		return BadgeGood
	default:
		return BadgeLow
	}
}

// percentage rounds part/total*100 half up using integer arithmetic.
func percentage(part, total int) int {
	if total <= 0 {
		return 100
	}
	return (200*part + total) / (2 * total)
}

func fold(s string) string {
	return strings.ToLower(s)
}

func foldSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		set[fold(skill)] = struct{}{}
	}
	return set
}
