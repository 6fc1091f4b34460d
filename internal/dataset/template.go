package dataset

import "strings"

// Expand substitutes {field} references in template with values from row.
// complete reports whether every referenced field was present; references
// that could not be resolved are left in place verbatim.
func Expand(template string, row Datum) (out string, complete bool) {
	var b strings.Builder
	complete = true
	scan(template, func(literal string) {
		b.WriteString(literal)
	}, func(field string) {
		value, ok := row.Lookup(field)
		if !ok {
			complete = false
			b.WriteString("{" + field + "}")
			return
		}
		b.WriteString(Format(value))
	})
	return b.String(), complete
}

// scan walks template, calling literal for plain text and field for each
// {name} reference. "{{" and "}}" are literal braces; an unterminated
// reference is treated as literal text.
func scan(template string, literal func(string), field func(string)) {
	runes := []rune(template)
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			literal(text.String())
			text.Reset()
		}
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '{' && i+1 < len(runes) && runes[i+1] == '{':
			text.WriteRune('{')
			i++
		case r == '}' && i+1 < len(runes) && runes[i+1] == '}':
			text.WriteRune('}')
			i++
		case r == '{':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '}' {
					end = j
					break
				}
				if runes[j] == '{' {
					break
				}
			}
			name := ""
			if end > 0 {
				name = strings.TrimSpace(string(runes[i+1 : end]))
			}
			if name == "" {
				text.WriteRune(r)
				continue
			}
			flush()
			field(name)
			i = end
		default:
			text.WriteRune(r)
		}
	}
	flush()
}
