package ecs

import (
	"fmt"

	"github.com/milk9111/raysweep/ecs/component"
)

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("%w: %s", component.ErrNilComponent, kind.Name())
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.store(kind.ID(), false).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	v, ok := w.store(kind.ID(), false).Get(e).(*T)
	return v, ok
}

// snapshot copies the entity list so callbacks may add or destroy entities.
func snapshot(ents []Entity) []Entity {
	return append([]Entity(nil), ents...)
}

// ForEach visits every live entity holding a T, in store order.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	for _, e := range snapshot(s.Entities()) {
		if v, ok := s.Get(e).(*T); ok && IsAlive(w, e) {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := w.store(ka.ID(), false), w.store(kb.ID(), false)
	for _, e := range IntersectEntities(sa, sb) {
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		if okA && okB && IsAlive(w, e) {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false)
	for _, e := range IntersectEntities(sa, sb, sc) {
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		c, okC := sc.Get(e).(*C)
		if okA && okB && okC && IsAlive(w, e) {
			fn(e, a, b, c)
		}
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, sb, sc, sd := w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false), w.store(kd.ID(), false)
	for _, e := range IntersectEntities(sa, sb, sc, sd) {
		a, okA := sa.Get(e).(*A)
		b, okB := sb.Get(e).(*B)
		c, okC := sc.Get(e).(*C)
		d, okD := sd.Get(e).(*D)
		if okA && okB && okC && okD && IsAlive(w, e) {
			fn(e, a, b, c, d)
		}
	}
}
