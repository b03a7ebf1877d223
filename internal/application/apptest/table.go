package apptest

import "slices"

// table filas por id conservando el orden de inserción.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[string]T{}}
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) del(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	return true
}

// all filas en orden de inserción.
func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[string]T, len(t.rows)), order: slices.Clone(t.order)}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

// page aplica limit/offset como lo hace el repositorio SQL (limit 0 = 20).
func page[T any](list []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 20
	}
	if offset >= len(list) {
		return nil
	}
	end := min(offset+limit, len(list))
	return list[offset:end]
}
