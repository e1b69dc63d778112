package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParsedEntry is one ingredient heard in a spoken phrase, before it becomes
// a pantry item draft.
type ParsedEntry struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Closed vocabulary of spoken quantities. Kept as one table so the parser's
// decision surface stays auditable.
var numberWords = map[string]float64{
	"a": 1, "an": 1,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
}

// Recognized unit tokens, mapped to their normalized form.
var unitTokens = map[string]string{
	"pcs": "pcs", "pc": "pcs",
	"g": "g", "kg": "kg",
	"ml": "ml", "l": "l",
	"tbsp": "tbsp", "tsp": "tsp",
}

var decimalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// ParseUtterance converts a raw transcript into ordered ingredient entries.
// It is a best-effort heuristic, not a grammar: malformed input degrades to
// a single best-guess entry instead of failing, and entries keep the clause
// order of the transcript.
func ParseUtterance(transcript string) []ParsedEntry {
	cleaned := cleanTranscript(transcript)
	cleaned = strings.TrimPrefix(cleaned, "add ")

	var entries []ParsedEntry
	for _, clause := range splitClauses(cleaned) {
		entries = append(entries, parseClause(clause))
	}
	return entries
}

// cleanTranscript lowercases, drops sentence punctuation, and collapses
// whitespace. A dot between two digits is a decimal point, not punctuation,
// so "1.5" survives while "3 apples." loses its full stop.
func cleanTranscript(transcript string) string {
	runes := []rune(strings.ToLower(transcript))

	var builder strings.Builder
	builder.Grow(len(runes))
	for i, char := range runes {
		switch char {
		case '?', '!':
			continue
		case '.':
			if i > 0 && i < len(runes)-1 && isDigit(runes[i-1]) && isDigit(runes[i+1]) {
				builder.WriteRune(char)
			}
			continue
		}
		builder.WriteRune(char)
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}

func isDigit(char rune) bool {
	return char >= '0' && char <= '9'
}

// splitClauses breaks the transcript on commas and on "and" as a standalone
// phrase boundary. "and" inside a word ("sandwich") never splits.
func splitClauses(cleaned string) []string {
	var clauses []string
	for _, part := range strings.Split(cleaned, ",") {
		for _, clause := range strings.Split(part, " and ") {
			clause = strings.TrimSpace(clause)
			if clause != "" {
				clauses = append(clauses, clause)
			}
		}
	}
	return clauses
}

func parseClause(clause string) ParsedEntry {
	tokens := strings.Fields(clause)
	if len(tokens) == 0 {
		// splitClauses drops empty clauses, but a malformed one must not crash
		return ParsedEntry{Name: clause, Quantity: 1, Unit: "pcs"}
	}

	cursor := 0

	quantity := 1.0
	quantityFound := false
	if decimalPattern.MatchString(tokens[0]) {
		if value, err := strconv.ParseFloat(tokens[0], 64); err == nil {
			quantity = value
			quantityFound = true
		}
	} else if value, ok := numberWords[tokens[0]]; ok {
		quantity = value
		quantityFound = true
	}
	if quantityFound {
		cursor++
	}

	unit := "pcs"
	if cursor < len(tokens) {
		if normalized, ok := unitTokens[tokens[cursor]]; ok {
			unit = normalized
			cursor++
		}
	}

	name := strings.Join(tokens[cursor:], " ")
	if name == "" {
		name = clause
	}

	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		quantity = 1
	}

	return ParsedEntry{Name: name, Quantity: quantity, Unit: unit}
}
