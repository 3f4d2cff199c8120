package entity

import "testing"

func TestTemperature(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "frio"},
		{39, "frio"},
		{40, "morno"},
		{69, "morno"},
		{70, "quente"},
		{100, "quente"},
	}

	for _, tt := range tests {
		if got := Temperature(tt.score); got != tt.want {
			t.Errorf("Temperature(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
