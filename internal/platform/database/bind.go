package database

import (
	"strconv"
	"strings"
)

// Bind resolves :name parameters in a query template into Postgres $n
// placeholders and collects the values positionally. Values are never
// spliced into the template, so quote and control characters in them are
// inert. Repeated names share one placeholder. A name with no value in
// params fails with KindInvalidRequest before anything is dispatched.
//
// The scanner skips single-quoted literals, double-quoted identifiers,
// and :: type casts, mirroring how Postgres itself tokenizes them.
func Bind(query string, params map[string]any) (string, []any, error) {
	var b strings.Builder
	b.Grow(len(query))

	var args []any
	placeholder := make(map[string]int, len(params))

	i := 0
	for i < len(query) {
		switch query[i] {
		case '\'':
			j, err := skipQuoted(query, i+1, '\'')
			if err != nil {
				return "", nil, err
			}
			b.WriteString(query[i:j])
			i = j
		case '"':
			j, err := skipQuoted(query, i+1, '"')
			if err != nil {
				return "", nil, err
			}
			b.WriteString(query[i:j])
			i = j
		case ':':
			if i+1 < len(query) && query[i+1] == ':' {
				b.WriteString("::")
				i += 2
				continue
			}
			name, end := scanIdent(query, i+1)
			if name == "" {
				b.WriteByte(':')
				i++
				continue
			}
			n, seen := placeholder[name]
			if !seen {
				val, ok := params[name]
				if !ok {
					return "", nil, New(KindInvalidRequest, "database: missing bind parameter :"+name)
				}
				args = append(args, val)
				n = len(args)
				placeholder[name] = n
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			i = end
		default:
			b.WriteByte(query[i])
			i++
		}
	}

	return b.String(), args, nil
}

// skipQuoted returns the index just past the closing delimiter, treating
// a doubled delimiter as an escape.
func skipQuoted(s string, i int, delim byte) (int, error) {
	for i < len(s) {
		if s[i] == delim {
			if i+1 < len(s) && s[i+1] == delim {
				i += 2
				continue
			}
			return i + 1, nil
		}
		i++
	}
	return 0, New(KindInvalidRequest, "database: unterminated quoted section in query template")
}

func scanIdent(s string, i int) (string, int) {
	start := i
	for i < len(s) {
		c := s[i]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			i++
			continue
		}
		break
	}
	return s[start:i], i
}
