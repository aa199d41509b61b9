package pyast

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// stringLiteral is a decoded Python string or bytes literal.
type stringLiteral struct {
	value  string
	bytes  bool
	format bool
}

// decodeStringLiteral decodes the source text of a single string literal,
// prefix and quotes included.
func decodeStringLiteral(text string) stringLiteral {
	i := 0
	for i < len(text) && text[i] != '\'' && text[i] != '"' {
		i++
	}
	prefix := strings.ToLower(text[:i])
	body := text[i:]

	quote := ""
	switch {
	case strings.HasPrefix(body, `"""`), strings.HasPrefix(body, `'''`):
		quote = body[:3]
	case len(body) > 0:
		quote = body[:1]
	}
	body = strings.TrimPrefix(body, quote)
	body = strings.TrimSuffix(body, quote)

	lit := stringLiteral{
		bytes:  strings.Contains(prefix, "b"),
		format: strings.Contains(prefix, "f") || strings.Contains(prefix, "t"),
	}
	if strings.Contains(prefix, "r") {
		lit.value = body
	} else {
		lit.value = unescape(body, lit.bytes)
	}
	return lit
}

// unescape applies Python's backslash escapes. Unknown escapes keep the backslash.
func unescape(s string, bytesLiteral bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
			// line continuation
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i:j], 8, 32)
			writeCode(&b, rune(v), bytesLiteral)
			i = j - 1
		case 'x':
			if v, ok := hexDigits(s, i+1, 2); ok {
				writeCode(&b, rune(v), bytesLiteral)
				i += 2
			} else {
				b.WriteString(`\x`)
			}
		case 'u', 'U':
			width := 4
			if e == 'U' {
				width = 8
			}
			if v, ok := hexDigits(s, i+1, width); ok && !bytesLiteral {
				b.WriteRune(rune(v))
				i += width
			} else {
				b.WriteByte('\\')
				b.WriteByte(e)
			}
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}

func hexDigits(s string, start, n int) (uint64, bool) {
	if start+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:start+n], 16, 32)
	return v, err == nil
}

func writeCode(b *strings.Builder, r rune, bytesLiteral bool) {
	if bytesLiteral {
		b.WriteByte(byte(r))
		return
	}
	b.WriteRune(r)
}

// stringConstant builds the Constant for a decoded literal.
func stringConstant(lit stringLiteral) *Constant {
	if lit.bytes {
		r := bytesRepr(lit.value)
		return &Constant{Str: r, Repr: r}
	}
	return &Constant{Str: lit.value, Repr: strRepr(lit.value), IsString: true}
}

// numberConstant parses an integer, float or imaginary literal.
func numberConstant(text string) *Constant {
	clean := strings.ToLower(strings.ReplaceAll(text, "_", ""))

	if strings.HasSuffix(clean, "j") {
		return &Constant{Str: clean, Repr: clean}
	}

	if n, ok := new(big.Int).SetString(clean, 0); ok {
		s := n.String()
		return &Constant{Str: s, Repr: s}
	}
	// Python allows redundant leading zeros in decimal literals such as "007".
	if n, ok := new(big.Int).SetString(strings.TrimLeft(clean, "0"), 10); ok {
		s := n.String()
		return &Constant{Str: s, Repr: s}
	}

	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		s := floatRepr(f)
		return &Constant{Str: s, Repr: s}
	}
	return &Constant{Str: text, Repr: text}
}

// floatRepr formats f the way Python's repr(float) does.
func floatRepr(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp >= -4 && exp < 16 {
		fixed := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(fixed, ".") {
			fixed += ".0"
		}
		return fixed
	}
	return sci
}

// strRepr quotes s the way Python's repr(str) does.
func strRepr(s string) string {
	quote := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteByte(quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			b.WriteString(`\x`)
			b.WriteString(leftPad(strconv.FormatInt(int64(r), 16), 2))
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// bytesRepr quotes raw bytes the way Python's repr(bytes) does.
func bytesRepr(s string) string {
	quote := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = '"'
	}

	var b strings.Builder
	b.WriteString("b")
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == quote:
			b.WriteByte('\\')
			b.WriteByte(quote)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			b.WriteString(`\x`)
			b.WriteString(leftPad(strconv.FormatInt(int64(c), 16), 2))
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

func leftPad(s string, n int) string {
	for len(s) < n {
		s = "0" + s
	}
	return s
}

// CleanDoc normalizes docstring indentation like Python's inspect.cleandoc:
// tabs are expanded, the common indent of all lines after the first is
// removed, the first line is left-trimmed, and leading/trailing blank lines
// are dropped.
func CleanDoc(doc string) string {
	lines := strings.Split(expandTabs(doc, 8), "\n")

	margin := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeft(line, " ")
		if content == "" {
			continue
		}
		indent := len(line) - len(content)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " \t\n\r\f\v")
	if margin >= 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) > margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = ""
			}
		}
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

// expandTabs replaces tabs with spaces up to the next multiple of size, per line.
func expandTabs(s string, size int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := size - col%size
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}
