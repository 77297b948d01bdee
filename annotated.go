package strata

import "fmt"

// query collects annotation values during a hit test.
type query struct {
	accepts func(v any) bool
	all     bool
	results []any
}

// add records v if the query accepts it and reports whether the search is
// over.
func (q *query) add(v any) bool {
	if !q.accepts(v) {
		return false
	}
	q.results = append(q.results, v)
	return !q.all
}

func queryFor[T any](all bool) *query {
	return &query{
		accepts: func(v any) bool {
			_, ok := v.(T)
			return ok
		},
		all: all,
	}
}

// Find returns the topmost, most specific annotation of type T under p, in
// root's coordinate space. Children are searched in reverse paint order and
// a descendant's annotation wins over its ancestors'.
func Find[T any](root Layer, p Offset) (T, bool) {
	q := queryFor[T](false)
	root.find(p, q)
	if len(q.results) == 0 {
		var zero T
		return zero, false
	}
	return q.results[0].(T), true
}

// FindAll returns every annotation of type T under p, topmost and most
// specific first.
func FindAll[T any](root Layer, p Offset) []T {
	q := queryFor[T](true)
	root.find(p, q)
	out := make([]T, len(q.results))
	for i, v := range q.results {
		out[i] = v.(T)
	}
	return out
}

// AnnotatedRegionLayer attaches a value to the region covered by its
// children, or to an explicit rectangle when a size is given, so that Find
// can discover it by position.
type AnnotatedRegionLayer[T any] struct {
	ContainerLayer

	value  T
	size   *Size
	offset Offset
}

// NewAnnotatedRegionLayer creates an annotated region. With a nil size the
// region is unbounded: any point that reaches the layer matches.
func NewAnnotatedRegionLayer[T any](value T, size *Size, offset Offset) *AnnotatedRegionLayer[T] {
	l := &AnnotatedRegionLayer[T]{value: value, size: size, offset: offset}
	l.init(l)
	return l
}

// Value returns the annotation value.
func (l *AnnotatedRegionLayer[T]) Value() T { return l.value }

// Size returns the annotated region size, or nil when the region is unbounded.
func (l *AnnotatedRegionLayer[T]) Size() *Size { return l.size }

// Offset returns the top-left of the annotated region.
func (l *AnnotatedRegionLayer[T]) Offset() Offset { return l.offset }

func (l *AnnotatedRegionLayer[T]) find(p Offset, q *query) bool {
	if l.ContainerLayer.find(p, q) {
		return true
	}
	if l.size != nil && !RectFromOffsetSize(l.offset, *l.size).Contains(p) {
		return false
	}
	return q.add(l.value)
}

func (l *AnnotatedRegionLayer[T]) debugProperties() []string {
	props := []string{fmt.Sprintf("value: %v", l.value)}
	if l.size != nil {
		props = append(props, fmt.Sprintf("size: %gx%g", l.size.Width, l.size.Height))
	}
	return append(props, fmt.Sprintf("offset: %s", l.offset))
}
