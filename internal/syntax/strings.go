package syntax

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// StringValue returns the value of a string literal token.
func StringValue(n *Node) (string, bool) {
	if n == nil || n.Kind != KindString {
		return "", false
	}

	return Unquote(n.Text)
}

// QuoteChar returns the quote character a string literal token uses.
func QuoteChar(n *Node) (byte, bool) {
	if n == nil || n.Kind != KindString || len(n.Text) < 2 {
		return 0, false
	}

	return n.Text[0], true
}

// Unquote decodes a single- or double-quoted JavaScript string literal.
// Literals whose value cannot be decoded exactly, such as legacy octal
// escapes or unpaired surrogates, are rejected.
func Unquote(raw string) (string, bool) {
	if len(raw) < 2 {
		return "", false
	}

	quote := raw[0]
	if (quote != '\'' && quote != '"') || raw[len(raw)-1] != quote {
		return "", false
	}

	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, true
	}

	var b strings.Builder

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		i++
		if i >= len(body) {
			return "", false
		}

		n, ok := unescape(&b, body[i:])
		if !ok {
			return "", false
		}

		i += n - 1
	}

	return b.String(), true
}

// unescape decodes the escape sequence at the start of s (after the
// backslash) into b and returns how many bytes of s it consumed.
func unescape(b *strings.Builder, s string) (int, bool) {
	switch s[0] {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		if len(s) > 1 && isDigit(s[1]) {
			return 0, false
		}

		b.WriteByte(0)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return 0, false
	case '\n':
		// line continuation
	case '\r':
		if len(s) > 1 && s[1] == '\n' {
			return 2, true
		}
	case 'x':
		code, ok := hexCode(s[1:], 2)
		if !ok {
			return 0, false
		}

		b.WriteRune(rune(code))

		return 3, true
	case 'u':
		return unicodeEscape(b, s)
	default:
		r, size := utf8.DecodeRuneInString(s)
		b.WriteRune(r)

		return size, true
	}

	return 1, true
}

// unicodeEscape decodes \u{...} or \uXXXX, joining a \uXXXX\uXXXX
// surrogate pair into one rune.
func unicodeEscape(b *strings.Builder, s string) (int, bool) {
	if len(s) > 1 && s[1] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, false
		}

		code, err := strconv.ParseUint(s[2:end], 16, 32)
		if err != nil || !utf8.ValidRune(rune(code)) {
			return 0, false
		}

		b.WriteRune(rune(code))

		return end + 1, true
	}

	code, ok := hexCode(s[1:], 4)
	if !ok {
		return 0, false
	}

	r := rune(code)
	if !utf16.IsSurrogate(r) {
		b.WriteRune(r)
		return 5, true
	}

	if len(s) < 7 || s[5] != '\\' || s[6] != 'u' {
		return 0, false
	}

	low, ok := hexCode(s[7:], 4)
	if !ok {
		return 0, false
	}

	pair := utf16.DecodeRune(r, rune(low))
	if pair == utf8.RuneError {
		return 0, false
	}

	b.WriteRune(pair)

	return 11, true
}

func hexCode(s string, digits int) (uint64, bool) {
	if len(s) < digits {
		return 0, false
	}

	code, err := strconv.ParseUint(s[:digits], 16, 32)
	if err != nil {
		return 0, false
	}

	return code, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// QuoteString encodes value as a JavaScript string literal using quote ('
// or "). Any other quote byte falls back to single quotes.
func QuoteString(value string, quote byte) string {
	if quote != '"' {
		quote = '\''
	}

	var b strings.Builder

	b.WriteByte(quote)

	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case rune(quote):
			b.WriteByte('\\')
			b.WriteByte(quote)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte(quote)

	return b.String()
}

// IsIdentifierName reports whether name can be written as a bare property
// name.
func IsIdentifierName(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		case r > utf8.RuneSelf && i > 0:
		default:
			return false
		}
	}

	return true
}
