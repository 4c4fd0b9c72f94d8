package store

import (
	"regexp"

	"priestconnect-api/internal/domain"
)

// Field names come from callers building predicates off user input, so they
// are checked before being spliced into a JSON path.
var fieldPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func compilePredicates(preds []domain.Predicate) (where string, args []any, err error) {
	for _, p := range preds {
		if !fieldPattern.MatchString(p.Field) {
			return "", nil, domain.ValidationError{Field: "predicate", Msg: "bad field name " + p.Field}
		}
		path := `'$.` + p.Field + `'`

		switch p.Op {
		case "eq":
			where += ` AND JSON_UNQUOTE(JSON_EXTRACT(doc, ` + path + `)) = ?`
			args = append(args, p.Value)
		case "like":
			where += ` AND LOWER(JSON_UNQUOTE(JSON_EXTRACT(doc, ` + path + `))) LIKE CONCAT('%', LOWER(?), '%')`
			args = append(args, p.Value)
		case "contains":
			where += ` AND JSON_CONTAINS(JSON_EXTRACT(doc, ` + path + `), JSON_QUOTE(?))`
			args = append(args, p.Value)
		default:
			return "", nil, domain.ValidationError{Field: "predicate", Msg: "unknown op " + p.Op}
		}
	}
	return where, args, nil
}
