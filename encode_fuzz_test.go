package tdif

import (
	"strings"
	"testing"
)

func FuzzAppendFieldRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"plain",
		`he said "hello"`,
		`C:\temp\`,
		`\N`,
		"a,b\nc",
		`"\"\\`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 1<<12 {
			t.Skip()
		}

		encoded := string(AppendField(nil, String(input)))
		if len(encoded) < 2 || encoded[0] != '"' || encoded[len(encoded)-1] != '"' {
			t.Fatalf("field not enclosed: %q", truncateForMessage(encoded))
		}
		got, ok := unescapeField(encoded[1 : len(encoded)-1])
		if !ok {
			t.Fatalf("unescaped quote or dangling escape in %q", truncateForMessage(encoded))
		}
		if got != input {
			t.Fatalf("round trip mismatch: got %q want %q", truncateForMessage(got), truncateForMessage(input))
		}
	})
}

// unescapeField reverses the backslash escaping of a quoted field body.
// It reports false for a bare quote or a trailing backslash.
func unescapeField(body string) (string, bool) {
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '"':
			return "", false
		case '\\':
			i++
			if i == len(body) {
				return "", false
			}
		}
		sb.WriteByte(body[i])
	}
	return sb.String(), true
}

func truncateForMessage(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
