package blink

import "blinkcode-go/errcode"

const (
	// DefaultUnitMs is the dot length used when Timing.UnitMs is zero.
	DefaultUnitMs = 200

	// MaxUnitMs keeps a word gap (7 units) within uint32.
	MaxUnitMs = ^uint32(0) / 7
)

// Timing sets the Morse unit. Dot = 1 unit, dash = 3, gap inside a letter
// = 1, between letters = 3, between words = 7.
type Timing struct {
	UnitMs uint32
}

func (t Timing) unit() uint32 {
	if t.UnitMs == 0 {
		return DefaultUnitMs
	}
	return t.UnitMs
}

var letters = [26]string{
	".-", "-...", "-.-.", "-..", ".", "..-.", "--.", "....", "..", ".---",
	"-.-", ".-..", "--", "-.", "---", ".--.", "--.-", ".-.", "...", "-",
	"..-", "...-", ".--", "-..-", "-.--", "--..",
}

var digits = [10]string{
	"-----", ".----", "..---", "...--", "....-",
	".....", "-....", "--...", "---..", "----.",
}

// codeFor returns the dot/dash code of r, or "" if r has none.
func codeFor(r rune) string {
	switch {
	case r >= 'A' && r <= 'Z':
		return letters[r-'A']
	case r >= 'a' && r <= 'z':
		return letters[r-'a']
	case r >= '0' && r <= '9':
		return digits[r-'0']
	}
	return ""
}

// ParseCode builds a Pattern from a code string: '.' dot, '-' dash,
// ' ' letter boundary, '/' word boundary. A looping pattern leads with a
// word gap so repeats stay separated; a one-shot pattern starts at once.
// A code with no dots or dashes yields the empty Pattern. Units above
// MaxUnitMs are rejected.
func ParseCode(code string, tm Timing, loop bool) (Pattern, error) {
	u := tm.unit()
	if u > MaxUnitMs {
		return Pattern{}, errcode.InvalidPattern
	}
	var steps []Step
	gap := uint32(0)
	if loop {
		gap = 7 * u
	}
	for _, c := range code {
		switch c {
		case '.', '-':
			on := u
			if c == '-' {
				on = 3 * u
			}
			steps = append(steps, Step{On: true, AfterMs: gap}, Step{On: false, AfterMs: on})
			gap = u
		case ' ':
			gap = widen(gap, 3*u, len(steps))
		case '/':
			gap = widen(gap, 7*u, len(steps))
		default:
			return Pattern{}, errcode.InvalidPattern
		}
	}
	return NewPattern(loop, steps...)
}

// widen grows the pending gap to at least w once a symbol has been emitted.
// Separators before the first symbol keep the leading gap unchanged.
func widen(gap, w uint32, emitted int) uint32 {
	if emitted == 0 || gap >= w {
		return gap
	}
	return w
}

// EncodeText converts letters, digits and spaces to Morse and builds a
// Pattern. Other runes are rejected.
func EncodeText(text string, tm Timing, loop bool) (Pattern, error) {
	code := make([]byte, 0, len(text)*5)
	for _, r := range text {
		if r == ' ' {
			code = append(code, '/')
			continue
		}
		c := codeFor(r)
		if c == "" {
			return Pattern{}, errcode.InvalidPattern
		}
		if len(code) > 0 && code[len(code)-1] != '/' {
			code = append(code, ' ')
		}
		code = append(code, c...)
	}
	return ParseCode(string(code), tm, loop)
}
