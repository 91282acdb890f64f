package memory

import "sort"

// row is a record that can copy itself without sharing pointer fields.
type row[T any] interface {
	Clone() T
}

// table is an insertion-ordered map of records keyed by id. Rows are cloned on
// the way in and out. It is not safe for concurrent use on its own; Store
// serializes access.
type table[T row[T]] struct {
	rows  map[string]T
	order map[string]uint64
	seq   uint64
}

func newTable[T row[T]]() *table[T] {
	return &table[T]{
		rows:  make(map[string]T),
		order: make(map[string]uint64),
	}
}

func (t *table[T]) get(id string) (T, bool) {
	r, ok := t.rows[id]
	if !ok {
		return r, false
	}
	return r.Clone(), true
}

func (t *table[T]) insert(id string, r T) {
	t.seq++
	t.rows[id] = r.Clone()
	t.order[id] = t.seq
}

func (t *table[T]) replace(id string, r T) {
	t.rows[id] = r.Clone()
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	delete(t.order, id)
	return true
}

// filter returns matching rows in insertion order; a nil keep matches everything.
func (t *table[T]) filter(keep func(T) bool) []T {
	ids := make([]string, 0, len(t.rows))
	for id, r := range t.rows {
		if keep == nil || keep(r) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return t.order[ids[i]] < t.order[ids[j]] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id].Clone())
	}
	return out
}

func (t *table[T]) any(match func(T) bool) bool {
	for _, r := range t.rows {
		if match(r) {
			return true
		}
	}
	return false
}

func (t *table[T]) len() int {
	return len(t.rows)
}
