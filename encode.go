package tdif

const (
	fieldSeparator = ','
	fieldEnclosure = '"'
	escapeChar     = '\\'
	commentStart   = '#'
	nullToken      = `\N`
)

// AppendField appends the encoded form of v to dst and returns the extended slice.
// Null is written as an unquoted \N, numbers and booleans unquoted, and strings
// enclosed in double quotes with every quote and backslash prefixed by a backslash.
func AppendField(dst []byte, v Value) []byte {
	switch v.kind {
	case NullKind:
		return append(dst, nullToken...)
	case NumberKind, BoolKind:
		return append(dst, v.text...)
	}

	dst = append(dst, fieldEnclosure)
	s := v.text
	start := 0
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == fieldEnclosure || c == escapeChar {
			dst = append(dst, s[start:i]...)
			dst = append(dst, escapeChar, c)
			start = i + 1
		}
	}
	dst = append(dst, s[start:]...)
	return append(dst, fieldEnclosure)
}

// appendRecord appends fields separated by commas and terminated by eol.
func appendRecord(dst []byte, fields []Value, eol string) []byte {
	for i := range fields {
		if i > 0 {
			dst = append(dst, fieldSeparator)
		}
		dst = AppendField(dst, fields[i])
	}
	return append(dst, eol...)
}

// appendHeader encodes names exactly like a record of string values.
func appendHeader(dst []byte, names []string, eol string) []byte {
	for i, name := range names {
		if i > 0 {
			dst = append(dst, fieldSeparator)
		}
		dst = AppendField(dst, String(name))
	}
	return append(dst, eol...)
}

func appendComment(dst []byte, text, eol string) []byte {
	dst = append(dst, commentStart)
	dst = append(dst, text...)
	return append(dst, eol...)
}
