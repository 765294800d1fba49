package dialect

import (
	"strings"
)

// quoteIdent brackets an identifier, doubling any closing bracket.
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

// quoteString renders a Unicode string literal.
func quoteString(s string) string {
	return "N'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func qualified(schemaName, name string) string {
	return quoteIdent(schemaName) + "." + quoteIdent(name)
}

// joinIdents renders an ordered, comma-separated list of quoted identifiers.
func joinIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// resolveSchema prefers the statement's own schema.
func resolveSchema(own, fallback string) string {
	if own != "" {
		return own
	}
	return fallback
}

// Indent prefixes every non-empty line of text with prefix. Lines that
// continue a string literal or a quoted identifier are left alone.
func Indent(text, prefix string) string {
	var (
		sb        strings.Builder
		closer    byte
		lineStart = true
	)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if lineStart && c != '\n' && closer == 0 {
			sb.WriteString(prefix)
		}
		lineStart = false
		sb.WriteByte(c)

		switch {
		case c == '\n':
			lineStart = true
		case closer == 0:
			switch c {
			case '\'':
				closer = '\''
			case '"':
				closer = '"'
			case '[':
				closer = ']'
			}
		case c == closer:
			// '' ]] and "" are escapes, not the end of the quote.
			if i+1 < len(text) && text[i+1] == closer {
				i++
				sb.WriteByte(closer)
				continue
			}
			closer = 0
		}
	}
	return sb.String()
}
