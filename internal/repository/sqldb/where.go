package sqldb

import "strings"

// where accumulates AND-ed predicates and their bound arguments.
//
//	var w where
//	w.add("league = ?", "NBA")
//	w.add("id = ?", 7)
//	w.String() // " WHERE league = ? AND id = ?"
//	w.args     // ["NBA", 7]
type where struct {
	preds []string
	args  []any
}

func (w *where) add(pred string, args ...any) {
	w.preds = append(w.preds, pred)
	w.args = append(w.args, args...)
}

// eq adds "col = ?" when v is set. A nil v is a wildcard.
func eq[T any](w *where, col string, v *T) {
	if v != nil {
		w.add(col+" = ?", *v)
	}
}

func (w *where) String() string {
	if len(w.preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.preds, " AND ")
}
