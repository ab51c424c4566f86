package service

import (
	"regexp"
	"strings"

	"playercare/internal/model"
)

// ReplyParser splits a freeform generated support reply into problem
// acknowledgment, solution and compensation segments. The generation prompt
// forbids section headers and asks for a triple-dash delimiter, but neither
// is guaranteed in practice, so every path here is defensive.
type ReplyParser struct{}

func NewReplyParser() *ReplyParser {
	return &ReplyParser{}
}

// Tunable thresholds for the sanity checks. Not part of the contract.
const (
	maxProblemLen   = 800
	shortProblemLen = 200
)

var (
	rolePrefixRe = regexp.MustCompile(`^(?:System|Human|Assistant|AI|Bot):\s*`)

	problemLabelRe  = regexp.MustCompile(`PROBLEM[_ ]SUMMARY`)
	solutionLabelRe = regexp.MustCompile(`SOLUTION`)
	compLabelRe     = regexp.MustCompile(`COMPENSATION`)

	// Bounded lazy matches anchored on the next expected label or delimiter,
	// used when the text repeats itself and delimiter positions cannot be
	// trusted.
	problemFirstRe  = regexp.MustCompile(`(?s)PROBLEM[_ ]SUMMARY\s*:?\s*(.*?)(?:SOLUTION|COMPENSATION|---|$)`)
	solutionFirstRe = regexp.MustCompile(`(?s)SOLUTION\s*:?\s*(.*?)(?:COMPENSATION|PROBLEM[_ ]SUMMARY|---|$)`)
	compFirstRe     = regexp.MustCompile(`(?s)COMPENSATION\s*:?\s*(.*?)(?:PROBLEM[_ ]SUMMARY|SOLUTION|---|$)`)

	labelTokenRe = regexp.MustCompile(`\*{0,2}(?:PROBLEM[_ ]SUMMARY|SOLUTION|COMPENSATION)\*{0,2}\s*:?[ \t]*`)
)

// Parse never fails; degenerate input collapses into the problem summary.
func (p *ReplyParser) Parse(raw string) model.ParsedReply {
	text := stripRolePrefixes(strings.TrimSpace(raw))
	text = stripQuotedEcho(text)

	var problem, solution, compensation string

	if p.hasDuplicatedSections(text) {
		problem, solution, compensation = extractFirstSections(text)
	} else {
		parts := splitSections(text)
		switch {
		case len(parts) >= 3:
			problem, solution = parts[0], parts[1]
			compensation = strings.Join(parts[2:], "\n")
		case len(parts) == 2:
			problem, solution = parts[0], parts[1]
		default:
			if problemLabelRe.MatchString(text) || solutionLabelRe.MatchString(text) {
				problem, solution, compensation = extractFirstSections(text)
			} else {
				problem = text
			}
		}
	}

	problem = cleanSection(problem)
	solution = cleanSection(solution)
	compensation = cleanSection(compensation)

	// A problem summary this long almost always means the split failed and
	// the whole reply landed in one segment. Re-split once and redistribute.
	if len(problem) > maxProblemLen || (len(problem) > shortProblemLen && strings.Contains(problem, "---")) {
		parts := splitSections(problem)
		if len(parts) >= 2 {
			problem = cleanSection(parts[0])
			if solution == "" {
				solution = cleanSection(parts[1])
			}
			if compensation == "" && len(parts) >= 3 {
				compensation = cleanSection(strings.Join(parts[2:], "\n"))
			}
		}
	}

	return model.ParsedReply{
		ProblemSummary:   problem,
		Solution:         solution,
		CompensationText: compensation,
		HasCompensation:  compensation != "",
	}
}

// hasDuplicatedSections fires when any conceptual section label appears
// twice, which means the model repeated itself and delimiter positions
// cannot be trusted.
func (p *ReplyParser) hasDuplicatedSections(text string) bool {
	return len(problemLabelRe.FindAllString(text, 2)) >= 2 ||
		len(solutionLabelRe.FindAllString(text, 2)) >= 2 ||
		len(compLabelRe.FindAllString(text, 2)) >= 2
}

func extractFirstSections(text string) (problem, solution, compensation string) {
	if m := problemFirstRe.FindStringSubmatch(text); len(m) == 2 {
		problem = m[1]
	}
	if m := solutionFirstRe.FindStringSubmatch(text); len(m) == 2 {
		solution = m[1]
	}
	if m := compFirstRe.FindStringSubmatch(text); len(m) == 2 {
		compensation = m[1]
	}
	if problem == "" && solution == "" && compensation == "" {
		problem = text
	}
	return problem, solution, compensation
}

func splitSections(text string) []string {
	var parts []string
	for _, part := range strings.Split(text, "---") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func stripRolePrefixes(text string) string {
	for {
		stripped := rolePrefixRe.ReplaceAllString(text, "")
		if stripped == text {
			return text
		}
		text = strings.TrimSpace(stripped)
	}
}

// stripQuotedEcho drops a leading quoted-string echo of the player message,
// a failure mode where the model opens by repeating its input.
func stripQuotedEcho(text string) string {
	if !strings.HasPrefix(text, `"`) {
		return text
	}
	end := strings.Index(text[1:], `"`)
	if end < 0 {
		return text
	}
	rest := strings.TrimSpace(text[end+2:])
	if rest == "" {
		return text
	}
	return rest
}

// cleanSection strips residual inline header tokens and whitespace.
func cleanSection(s string) string {
	return strings.TrimSpace(labelTokenRe.ReplaceAllString(s, ""))
}
