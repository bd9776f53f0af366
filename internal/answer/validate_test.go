package answer

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		accepted []string
		want     bool
	}{
		{"case insensitive", "The", []string{"the"}, true},
		{"surrounding whitespace trimmed", " the ", []string{"the"}, true},
		{"typo is wrong", "teh", []string{"the"}, false},
		{"no match in set", "x", []string{"y", "z"}, false},
		{"second accepted answer", "upon", []string{"on", "upon"}, true},
		{"multi-word answer", " Is Playing ", []string{"is playing"}, true},

		// Questions that accept "no word required".
		{"empty input when empty allowed", "", []string{"", "-", "--"}, true},
		{"dash when empty allowed", "-", []string{"--"}, true},
		{"double dash when empty allowed", "--", []string{"-"}, true},
		{"no preposition phrase", "no preposition", []string{"--"}, true},
		{"no preposition mixed case", "No Preposition", []string{"--"}, true},

		// Empty-family inputs are only accepted if the question opts in.
		{"empty input without empty allowed", "", []string{"the"}, false},
		{"dash without empty allowed", "-", []string{"the"}, false},
		{"no preposition without empty allowed", "no preposition", []string{"on"}, false},

		// A real word still matches alongside the empty convention.
		{"word answer next to empty convention", "on", []string{"on", "--"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.input, tt.accepted); got != tt.want {
				t.Errorf("Validate(%q, %v) = %v, want %v", tt.input, tt.accepted, got, tt.want)
			}
		})
	}
}

func TestAllowsEmpty(t *testing.T) {
	tests := []struct {
		accepted []string
		want     bool
	}{
		{[]string{""}, true},
		{[]string{"-"}, true},
		{[]string{"--"}, true},
		{[]string{"on", "--"}, true},
		{[]string{"the"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := AllowsEmpty(tt.accepted); got != tt.want {
			t.Errorf("AllowsEmpty(%v) = %v, want %v", tt.accepted, got, tt.want)
		}
	}
}
