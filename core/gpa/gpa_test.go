package gpa

import "testing"

func Test_Convert(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		wantLetter string
		wantPoint  float64
		wantErr    error
	}{
		{name: "distinction", percentage: 95, wantLetter: "A", wantPoint: 4.0},
		{name: "boundary inclusive", percentage: 90, wantLetter: "A", wantPoint: 4.0},
		{name: "just below boundary", percentage: 89.9, wantLetter: "A-", wantPoint: 3.7},
		{name: "first division", percentage: 72, wantLetter: "B", wantPoint: 3.0},
		{name: "pass", percentage: 45, wantLetter: "D", wantPoint: 1.0},
		{name: "fail", percentage: 39.5, wantLetter: "F", wantPoint: 0},
		{name: "zero", percentage: 0, wantLetter: "F", wantPoint: 0},
		{name: "full marks", percentage: 100, wantLetter: "A", wantPoint: 4.0},
		{name: "negative", percentage: -1, wantErr: ErrOutOfRange},
		{name: "above 100", percentage: 100.1, wantErr: ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Convert(tt.percentage)
			if err != tt.wantErr {
				t.Fatalf("Convert(%v) error = %v; want %v", tt.percentage, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if g.Letter != tt.wantLetter || g.GradePoint != tt.wantPoint {
				t.Errorf("Convert(%v) = %s/%v; want %s/%v", tt.percentage, g.Letter, g.GradePoint, tt.wantLetter, tt.wantPoint)
			}
		})
	}
}

func Test_Average(t *testing.T) {
	got, err := Average([]float64{95, 72, 45}) // 4.0 + 3.0 + 1.0
	if err != nil {
		t.Fatalf("Average(): %v", err)
	}
	want := 8.0 / 3
	if got != want {
		t.Errorf("Average() = %v; want %v", got, want)
	}

	if got, err = Average(nil); err != nil || got != 0 {
		t.Errorf("Average(nil) = %v, %v; want 0, nil", got, err)
	}

	if _, err = Average([]float64{50, 200}); err != ErrOutOfRange {
		t.Errorf("Average() error = %v; want %v", err, ErrOutOfRange)
	}
}
