// Package lexutil provides the pure-ASCII byte scanning primitives shared
// by every layer of the .ui compiler: identifier recognition and
// whitespace/comment skipping. All identifier parsing in this compiler is
// ASCII-only even though source files may contain UTF-8 elsewhere.
package lexutil

// IsIdentStart reports whether b can begin an identifier: an ASCII letter
// or underscore.
func IsIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

// IsIdentChar reports whether b can continue an identifier: anything
// IsIdentStart allows, plus ASCII digits.
func IsIdentChar(b byte) bool {
	return IsIdentStart(b) || (b >= '0' && b <= '9')
}

// IdentAt returns the longest identifier in src starting at offset start,
// and the offset just past it. It returns ok=false if src[start] is not an
// identifier-start byte (including when start is out of range).
func IdentAt(src []byte, start int) (name string, end int, ok bool) {
	if start < 0 || start >= len(src) || !IsIdentStart(src[start]) {
		return "", start, false
	}
	end = start + 1
	for end < len(src) && IsIdentChar(src[end]) {
		end++
	}
	return string(src[start:end]), end, true
}

// SkipWhitespaceAndComments advances idx past any run of ASCII whitespace
// and any number of "//"-to-end-of-line comments. It is idempotent: calling
// it again at the returned offset is a no-op.
func SkipWhitespaceAndComments(src []byte, idx int) int {
	for {
		for idx < len(src) && isSpace(src[idx]) {
			idx++
		}
		if idx+1 < len(src) && src[idx] == '/' && src[idx+1] == '/' {
			nl := indexByte(src, idx, '\n')
			if nl < 0 {
				return len(src)
			}
			idx = nl + 1
			continue
		}
		return idx
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func indexByte(src []byte, from int, b byte) int {
	for i := from; i < len(src); i++ {
		if src[i] == b {
			return i
		}
	}
	return -1
}
