package services

import "testing"

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already canonical", input: "chicken breast", expected: "chicken breast"},
		{name: "mixed case and punctuation", input: "Chicken   Breast!!", expected: "chicken breast"},
		{name: "leading and trailing whitespace", input: "  Milk \t", expected: "milk"},
		{name: "digits kept", input: "2% Milk", expected: "2 milk"},
		{name: "apostrophes removed without splitting", input: "Ben's Jam", expected: "bens jam"},
		{name: "punctuation between words keeps single space", input: "salt - and - pepper", expected: "salt and pepper"},
		{name: "empty input", input: "", expected: ""},
		{name: "whitespace only", input: "   \t\n", expected: ""},
		{name: "symbols only", input: "!!??", expected: ""},
		{name: "non-ascii stripped", input: "crème fraîche", expected: "crme frache"},
		{name: "newlines collapse", input: "olive\noil", expected: "olive oil"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := CanonicalName(test.input)
			if result != test.expected {
				t.Errorf("CanonicalName(%q) = %q, expected %q", test.input, result, test.expected)
			}
		})
	}
}

func TestCanonicalName_Idempotent(t *testing.T) {
	inputs := []string{
		"Chicken   Breast!!",
		"  Extra-Virgin OLIVE oil  ",
		"2% milk",
		"salt - and - pepper",
		"crème fraîche",
		"",
		"   ",
		"a!b c?d",
	}

	for _, input := range inputs {
		once := CanonicalName(input)
		twice := CanonicalName(once)
		if once != twice {
			t.Errorf("CanonicalName not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
