package invoice

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"100.00", 100.00, true},
		{"$100.00", 100.00, true},
		{"€ 1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"1,234,567.89", 1234567.89, true},
		{"12,345", 12345, true},
		{" 42 ", 42, true},
		{"-15.50", -15.50, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"Net 30", 0, false},
		{"12.34.56", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
