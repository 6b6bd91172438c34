package utils

import "testing"

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{"small number unchanged", 950, "950"},
		{"zero", 0, "0"},
		{"four digits", 1500, "1,500"},
		{"typical price", 800000, "800,000"},
		{"seven digits", 1250000, "1,250,000"},
		{"negative passes through", -42000, "-42000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupThousands(tt.input); got != tt.want {
				t.Errorf("GroupThousands(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole number drops fraction", 2, "2"},
		{"half bath keeps fraction", 2.5, "2.5"},
		{"one and a half", 1.5, "1.5"},
		{"three", 3, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDecimal(tt.input); got != tt.want {
				t.Errorf("FormatDecimal(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
