package content

// FieldTable maps an output field to its candidate source fields in
// priority order. The first candidate holding a non-empty scalar wins.
//
//	var teamFields = content.FieldTable{
//	    "role": {"role", "position", "jobTitle"},
//	}
type FieldTable map[string][]string

// First returns the first non-empty scalar among candidates, formatted as a
// string. Candidates may be dotted paths.
func First(rec Record, candidates ...string) string {
	for _, name := range candidates {
		v, ok := Lookup(rec, name)
		if !ok {
			continue
		}
		if s, ok := stringValue(v); ok {
			return s
		}
	}
	return ""
}

// FirstOr is First with a default for when no candidate has a value.
func FirstOr(rec Record, def string, candidates ...string) string {
	if s := First(rec, candidates...); s != "" {
		return s
	}
	return def
}

// Resolve evaluates every entry of the table against rec. Output fields
// with no matching candidate map to "".
func Resolve(rec Record, table FieldTable) map[string]string {
	out := make(map[string]string, len(table))
	for field, candidates := range table {
		out[field] = First(rec, candidates...)
	}
	return out
}

// Get is a convenience for reading one resolved field of a table.
func (t FieldTable) Get(rec Record, field string) string {
	return First(rec, t[field]...)
}
