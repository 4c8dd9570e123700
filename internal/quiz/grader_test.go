package quiz

import "testing"

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		input   string
		correct int
		want    bool
	}{
		{"42", 42, true},
		{" 42 ", 42, true},
		{"+42", 42, true},
		{"042", 42, true},
		{"-3", -3, true},
		{"43", 42, false},
		{"abc", 42, false},
		{"42.0", 42, false},
		{"", 42, false},
		{"4 2", 42, false},
	}

	for _, tc := range tests {
		if got := CheckAnswer(tc.input, tc.correct); got != tc.want {
			t.Errorf("CheckAnswer(%q, %d) = %v, want %v", tc.input, tc.correct, got, tc.want)
		}
	}
}
