// Package gpa converts percentage marks to letter grades on the 4.0 scale
// used by the portal's GPA converter tool.
package gpa

import "github.com/pkg/errors"

var ErrOutOfRange = errors.New("percentage must be between 0 and 100")

// Grade is one row of the conversion scale. MinPercent is inclusive; a
// percentage belongs to the first row whose MinPercent it reaches.
type Grade struct {
	Letter     string  `json:"letter"`
	GradePoint float64 `json:"grade_point"`
	MinPercent float64 `json:"min_percent"`
	Remark     string  `json:"remark"`
}

// scale rows are ordered from best to worst.
var scale = []Grade{
	{Letter: "A", GradePoint: 4.0, MinPercent: 90, Remark: "Distinction"},
	{Letter: "A-", GradePoint: 3.7, MinPercent: 85, Remark: "Distinction"},
	{Letter: "B+", GradePoint: 3.3, MinPercent: 80, Remark: "First Division"},
	{Letter: "B", GradePoint: 3.0, MinPercent: 70, Remark: "First Division"},
	{Letter: "B-", GradePoint: 2.7, MinPercent: 65, Remark: "Second Division"},
	{Letter: "C+", GradePoint: 2.3, MinPercent: 60, Remark: "Second Division"},
	{Letter: "C", GradePoint: 2.0, MinPercent: 50, Remark: "Pass"},
	{Letter: "D", GradePoint: 1.0, MinPercent: 40, Remark: "Pass"},
	{Letter: "F", GradePoint: 0.0, MinPercent: 0, Remark: "Fail"},
}

// Scale returns a copy of the conversion table, best grade first.
func Scale() []Grade {
	out := make([]Grade, len(scale))
	copy(out, scale)
	return out
}

// Convert maps a percentage to its Grade.
func Convert(percentage float64) (Grade, error) {
	if percentage < 0 || percentage > 100 {
		return Grade{}, ErrOutOfRange
	}
	for _, g := range scale {
		if percentage >= g.MinPercent {
			return g, nil
		}
	}
	return scale[len(scale)-1], nil
}

// Average computes the grade-point average of the given percentages.
func Average(percentages []float64) (float64, error) {
	if len(percentages) == 0 {
		return 0, nil
	}
	var sum float64
	for _, p := range percentages {
		g, err := Convert(p)
		if err != nil {
			return 0, err
		}
		sum += g.GradePoint
	}
	return sum / float64(len(percentages)), nil
}
