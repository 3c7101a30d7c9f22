package core

// CodeText returns the code portion of one source line. Text from the
// first '#' outside a string literal onward is dropped, and the contents
// of single-line string literals are replaced with spaces so byte offsets
// are kept.
func CodeText(line string) string {
	b := []byte(line)
	var quote byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(b) {
				b[i], b[i+1] = ' ', ' '
				i++
				continue
			}
			if c == quote {
				quote = 0
				continue
			}
			b[i] = ' '
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return string(b[:i])
		}
	}
	return string(b)
}
