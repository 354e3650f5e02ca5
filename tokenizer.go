package flatly

import (
	"strings"
)

// Span addresses one field token within a record line. Tokens stay offsets
// into the original text; an independent value is materialized only by the
// conversion step that needs one.
type Span struct {
	start   int
	end     int
	escaped bool
}

// Token returns the field substring, unescaping doubled quotes only when
// the span was produced from a quoted field that contains them.
func (s Span) Token(line string) string {
	token := line[s.start:s.end]
	if s.escaped {
		token = strings.ReplaceAll(token, `""`, `"`)
	}
	return token
}

// IsBlank reports whether the span holds only whitespace.
func (s Span) IsBlank(line string) bool {
	for i := s.start; i < s.end; i++ {
		if !isSpace(line[i]) {
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// splitDelimited scans line once left to right, tracking quote state, and
// appends one span per field until limit fields are located; trailing fields
// are not scanned. Unquoted fields are trimmed of surrounding whitespace,
// quoted fields are not; a doubled quote inside a quoted field is a literal
// quote.
func splitDelimited(line string, delimiter, quote byte, limit int, spans []Span) ([]Span, error) {
	i := 0
	for len(spans) < limit {
		start := i
		j := start
		for j < len(line) && isSpace(line[j]) {
			j++
		}
		if j < len(line) && line[j] == quote {
			k := j + 1
			escaped := false
			for {
				if k >= len(line) {
					return spans, recordError("unterminated quote at offset %v", j)
				}
				if line[k] != quote {
					k++
					continue
				}
				if k+1 < len(line) && line[k+1] == quote {
					escaped = true
					k += 2
					continue
				}
				break
			}
			spans = append(spans, Span{start: j + 1, end: k, escaped: escaped})
			i = k + 1
			for i < len(line) && line[i] != delimiter {
				i++
			}
		} else {
			k := start
			for k < len(line) && line[k] != delimiter {
				k++
			}
			s, e := start, k
			for s < e && isSpace(line[s]) {
				s++
			}
			for e > s && isSpace(line[e-1]) {
				e--
			}
			spans = append(spans, Span{start: s, end: e})
			i = k
		}
		if i >= len(line) {
			break
		}
		i++ //skip delimiter
	}
	return spans, nil
}

// column is one fixed-width extraction window.
type column struct {
	start  int
	length int
}

// splitFixed extracts each configured [start, start+length) window, clipped
// to the line length; a window past the end of the line yields a blank span.
// Whitespace at both ends of the window is trimmed.
func splitFixed(line string, columns []column, spans []Span) []Span {
	for _, col := range columns {
		s := col.start
		if s > len(line) {
			s = len(line)
		}
		e := col.start + col.length
		if e > len(line) {
			e = len(line)
		}
		for s < e && isSpace(line[s]) {
			s++
		}
		for e > s && isSpace(line[e-1]) {
			e--
		}
		spans = append(spans, Span{start: s, end: e})
	}
	return spans
}
