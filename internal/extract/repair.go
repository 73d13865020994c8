package extract

import "strings"

// repairStrategy names the closure order that produced a candidate.
type repairStrategy string

const (
	strategyDirect        repairStrategy = "direct"
	strategyStackOrder    repairStrategy = "stack-order"
	strategyBracketsFirst repairStrategy = "brackets-first"
	strategyBracesFirst   repairStrategy = "braces-first"
	strategyLibrary       repairStrategy = "library"
)

type repairCandidate struct {
	payload  string
	strategy repairStrategy
}

// repairCandidates produces complete candidate payloads for a truncated one,
// most plausible first. The incomplete trailing element is trimmed, dangling
// keys and separators are removed, then the still-open containers are closed
// in each plausible order. An empty slice means the payload was one
// incomplete token with nothing salvageable.
func repairCandidates(payload string) []repairCandidate {
	cleaned := trimIncompleteString(payload)
	cleaned = trimDanglingTail(cleaned)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	stack := openContainers(cleaned)
	if len(stack) == 0 {
		return []repairCandidate{{payload: cleaned, strategy: strategyStackOrder}}
	}

	var braces, brackets int
	closersInStackOrder := make([]byte, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i] {
		case '{':
			braces++
			closersInStackOrder = append(closersInStackOrder, '}')
		case '[':
			brackets++
			closersInStackOrder = append(closersInStackOrder, ']')
		}
	}

	closures := []struct {
		suffix   string
		strategy repairStrategy
	}{
		{string(closersInStackOrder), strategyStackOrder},
		{strings.Repeat("]", brackets) + strings.Repeat("}", braces), strategyBracketsFirst},
		{strings.Repeat("}", braces) + strings.Repeat("]", brackets), strategyBracesFirst},
	}

	seen := map[string]struct{}{}
	candidates := make([]repairCandidate, 0, len(closures))
	for _, closure := range closures {
		candidate := cleaned + closure.suffix
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		candidates = append(candidates, repairCandidate{payload: candidate, strategy: closure.strategy})
	}
	return candidates
}

// trimIncompleteString removes a string token the payload was cut inside of.
// The whole partial token goes, not just its closing quote, since a half word
// is worse than a missing value.
func trimIncompleteString(payload string) string {
	state := newScanState()
	for i := 0; i < len(payload); i++ {
		state.feed(payload[i], i)
	}
	if !state.inString || state.stringStart < 0 {
		return payload
	}
	return payload[:state.stringStart]
}

// trimDanglingTail repeatedly removes trailing fragments that cannot end a
// complete element: separators, a key with its colon but no value, and a bare
// key that never got its colon.
func trimDanglingTail(payload string) string {
	for {
		trimmed := strings.TrimRight(payload, " \t\r\n")
		switch {
		case trimmed == "":
			return trimmed
		case strings.HasSuffix(trimmed, ","):
			payload = trimmed[:len(trimmed)-1]
		case strings.HasSuffix(trimmed, ":"):
			payload = trimQuotedToken(trimmed[:len(trimmed)-1])
		case strings.HasSuffix(trimmed, `"`):
			cut, changed := trimBareKey(trimmed)
			if !changed {
				return trimmed
			}
			payload = cut
		default:
			return trimmed
		}
	}
}

// trimQuotedToken removes a trailing quoted token, typically the key left
// behind after its colon was stripped.
func trimQuotedToken(payload string) string {
	trimmed := strings.TrimRight(payload, " \t\r\n")
	start := quotedTokenStart(trimmed)
	if start < 0 {
		return trimmed
	}
	return trimmed[:start]
}

// trimBareKey removes a trailing quoted string when it sits in key position
// inside an object with no colon after it. A trailing string that is an array
// element or an object value (preceded by a colon) is complete and stays.
func trimBareKey(payload string) (string, bool) {
	start := quotedTokenStart(payload)
	if start < 0 {
		return payload, false
	}
	before := strings.TrimRight(payload[:start], " \t\r\n")
	if before == "" {
		return payload, false
	}
	stack := openContainers(before)
	if len(stack) == 0 || stack[len(stack)-1] != '{' {
		return payload, false
	}
	switch before[len(before)-1] {
	case ',', '{':
		return payload[:start], true
	}
	return payload, false
}

// quotedTokenStart returns the offset of the opening quote of a trailing
// complete string token, or -1 when the payload does not end with one.
func quotedTokenStart(payload string) int {
	if !strings.HasSuffix(payload, `"`) {
		return -1
	}
	for i := len(payload) - 2; i >= 0; i-- {
		if payload[i] != '"' {
			continue
		}
		if backslashRunIsEven(payload, i) {
			return i
		}
	}
	return -1
}

func backslashRunIsEven(payload string, quoteIdx int) bool {
	count := 0
	for i := quoteIdx - 1; i >= 0 && payload[i] == '\\'; i-- {
		count++
	}
	return count%2 == 0
}
