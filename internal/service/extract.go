package service

import (
	"regexp"
	"strings"
)

// JSON extraction from unreliable model output, as an explicit pipeline:
// fenced code block first, then a balanced-brace scan over the whole text.

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// extractFencedJSON returns the first fenced code block containing an object.
func extractFencedJSON(raw string) (string, bool) {
	m := fencedBlockRe.FindStringSubmatch(raw)
	if len(m) == 2 {
		return m[1], true
	}
	return "", false
}

// extractBalancedJSON scans raw for all balanced-brace substrings. Braces
// inside JSON string literals are ignored.
func extractBalancedJSON(raw string) []string {
	var candidates []string
	depth := 0
	start := -1
	inString := false
	escaped := false
	for i, r := range raw {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					candidates = append(candidates, raw[start:i+1])
					start = -1
				}
			}
		}
	}
	return candidates
}

// chooseCandidate prefers the first candidate that looks like a
// classification payload, else the last candidate found.
func chooseCandidate(candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	for _, c := range candidates {
		if strings.Contains(c, "suggestedCategories") || strings.Contains(c, "autoResolvable") {
			return c, true
		}
	}
	return candidates[len(candidates)-1], true
}

// extractClassificationJSON runs the full extraction pipeline.
func extractClassificationJSON(raw string) (string, bool) {
	if block, ok := extractFencedJSON(raw); ok {
		return block, true
	}
	return chooseCandidate(extractBalancedJSON(raw))
}
