package scholarship

import (
	"fmt"
	"strconv"
	"strings"
)

// duplicateThreshold is the similarity score at or above which an existing
// scholarship is flagged as a likely duplicate of the candidate.
const duplicateThreshold = 80

type (
	// Candidate is a scholarship about to be created, checked against the
	// existing catalog before insertion.
	Candidate struct {
		Name     string `json:"name" validate:"required"`
		Provider string `json:"provider"`
		Website  string `json:"website" validate:"omitempty,url"`
		Year     int    `json:"year"`
	}

	// Match describes one existing scholarship that resembles the candidate.
	Match struct {
		ID              string  `json:"id"`
		Name            string  `json:"name"`
		SimilarityScore float64 `json:"similarity_score"`
		Reason          string  `json:"reason"`
	}

	// CheckResult is the JSON-serializable outcome of a duplicate check.
	CheckResult struct {
		IsDuplicate bool    `json:"is_duplicate"`
		Confidence  float64 `json:"confidence"`
		Matches     []Match `json:"matches"`
	}
)

// normalizeName lowercases s and collapses all whitespace runs to single
// spaces, so that name comparison ignores case and spacing.
func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// CheckDuplicate compares a candidate against the existing scholarships.
// An existing entry is flagged when its normalized name matches exactly or
// its similarity score reaches the threshold; same provider, same website
// and a matching year token in the existing slug are reported as extra
// reasons but never flag an entry on their own. Confidence is the highest
// score among flagged entries. Pure comparison; it cannot fail, an empty
// catalog simply yields no matches.
func CheckDuplicate(c Candidate, existing []Scholarship) CheckResult {
	res := CheckResult{Matches: []Match{}}

	candName := normalizeName(c.Name)
	candProvider := normalizeName(c.Provider)
	candWebsite := strings.TrimRight(strings.ToLower(strings.TrimSpace(c.Website)), "/")
	candYear := ""
	if c.Year > 0 {
		candYear = strconv.Itoa(c.Year)
	}

	for _, sch := range existing {
		exName := normalizeName(sch.Name)
		score := SimilarityScore(candName, exName)
		exact := candName != "" && candName == exName

		if !exact && score < duplicateThreshold {
			continue
		}

		var reasons []string
		if exact {
			reasons = append(reasons, "Exact name match")
		} else {
			reasons = append(reasons, fmt.Sprintf("Similar name (%.0f%% match)", score))
		}
		if candProvider != "" && candProvider == normalizeName(sch.Provider) {
			reasons = append(reasons, "Same provider")
		}
		if candWebsite != "" && candWebsite == strings.TrimRight(strings.ToLower(strings.TrimSpace(sch.Website)), "/") {
			reasons = append(reasons, "Same website URL")
		}
		if candYear != "" && strings.Contains(sch.Slug, candYear) {
			reasons = append(reasons, "Existing entry for year "+candYear)
		}

		res.IsDuplicate = true
		if score > res.Confidence {
			res.Confidence = score
		}
		res.Matches = append(res.Matches, Match{
			ID:              sch.ID,
			Name:            sch.Name,
			SimilarityScore: score,
			Reason:          strings.Join(reasons, "; "),
		})
	}
	return res
}
