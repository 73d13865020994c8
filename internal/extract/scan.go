package extract

// scanState tracks structural nesting while walking payload text byte by
// byte. Quotes toggle string mode, a backslash inside a string skips the next
// byte, and openers/closers outside strings maintain the open-container
// stack with the innermost container last.
type scanState struct {
	inString    bool
	escaped     bool
	stack       []byte
	stringStart int
}

func newScanState() *scanState {
	return &scanState{stringStart: -1}
}

func (s *scanState) feed(c byte, offset int) {
	if s.escaped {
		s.escaped = false
		return
	}
	switch c {
	case '\\':
		if s.inString {
			s.escaped = true
		}
	case '"':
		if s.inString {
			s.inString = false
			s.stringStart = -1
		} else {
			s.inString = true
			s.stringStart = offset
		}
	case '{', '[':
		if !s.inString {
			s.stack = append(s.stack, c)
		}
	case '}', ']':
		if !s.inString && len(s.stack) > 0 {
			s.stack = s.stack[:len(s.stack)-1]
		}
	}
}

func (s *scanState) depth() int {
	return len(s.stack)
}

// scanBoundary returns the offset one past the closer matching the opener at
// offset zero. It returns errUnclosed when the text ends while containers are
// still open, which is the truncation signal consumed by the repair engine.
func scanBoundary(text string) (int, error) {
	if len(text) == 0 || (text[0] != '{' && text[0] != '[') {
		return 0, ErrNoPayload
	}
	state := newScanState()
	for i := 0; i < len(text); i++ {
		state.feed(text[i], i)
		if state.depth() == 0 && !state.inString {
			return i + 1, nil
		}
	}
	return 0, errUnclosed
}

// openContainers walks the whole text and reports the stack of containers
// still open at its end, innermost last.
func openContainers(text string) []byte {
	state := newScanState()
	for i := 0; i < len(text); i++ {
		state.feed(text[i], i)
	}
	return state.stack
}
