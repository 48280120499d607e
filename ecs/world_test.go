package ecs

import (
	"testing"

	"github.com/milk9111/raysweep/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name    string
		create  int
		destroy []int
		alive   int
	}{
		{"single", 1, []int{0}, 0},
		{"destroy_middle", 3, []int{1}, 2},
		{"destroy_none", 2, nil, 2},
		{"destroy_twice", 2, []int{0, 0}, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			destroyed := map[int]bool{}
			for _, i := range c.destroy {
				if got := DestroyEntity(w, ents[i]); got == destroyed[i] {
					t.Fatalf("DestroyEntity(%v) = %v, already destroyed=%v", ents[i], got, destroyed[i])
				}
				destroyed[i] = true
			}
			if n := len(Entities(w)); n != c.alive {
				t.Fatalf("expected %d live entities, got %d", c.alive, n)
			}
			for i, e := range ents {
				if IsAlive(w, e) == destroyed[i] {
					t.Fatalf("entity %v alive=%v, destroyed=%v", e, IsAlive(w, e), destroyed[i])
				}
			}
		})
	}
}

func TestComponentStores(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	names := component.NewComponent[string]()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	if err := Add(w, e1, ints.Kind(), intPtr(10)); err != nil {
		t.Fatal(err)
	}
	if v, ok := Get(w, e1, ints.Kind()); !ok || *v != 10 {
		t.Fatalf("expected 10, got %v ok=%v", v, ok)
	}
	if err := Add(w, e1, ints.Kind(), intPtr(11)); err != nil {
		t.Fatal(err)
	}
	if v, _ := Get(w, e1, ints.Kind()); *v != 11 {
		t.Fatalf("second Add should replace the value, got %v", *v)
	}

	a, b := "a", "b"
	if err := Add(w, e1, names.Kind(), &a); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, names.Kind(), &b); err != nil {
		t.Fatal(err)
	}
	if Has(w, e2, ints.Kind()) || !Has(w, e2, names.Kind()) {
		t.Fatalf("stores of different kinds should be independent")
	}

	if !Remove(w, e1, names.Kind()) || Remove(w, e1, names.Kind()) {
		t.Fatalf("Remove should report true once")
	}
	if v, ok := Get(w, e2, names.Kind()); !ok || *v != "b" {
		t.Fatalf("swap-remove lost e2's value, got %v ok=%v", v, ok)
	}

	DestroyEntity(w, e2)
	if Has(w, e2, names.Kind()) {
		t.Fatalf("destroying an entity should drop its components")
	}
}

func TestForEachSkipsDestroyedDuringIteration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	ents := make([]Entity, 3)
	for i := range ents {
		ents[i] = CreateEntity(w)
		if err := Add(w, ents[i], kind, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	var seen []int
	ForEach(w, kind, func(e Entity, v *int) {
		seen = append(seen, *v)
		if *v == 0 {
			DestroyEntity(w, ents[2])
		}
	})
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Fatalf("expected values 0 and 1, got %v", seen)
	}
}

func TestForEachIntersections(t *testing.T) {
	// membership[i] lists which of the four kinds entity i carries
	cases := []struct {
		name       string
		membership [][]int
		destroy    int
		want3      []int
		want4      []int
	}{
		{"one_full_match", [][]int{{0}, {0, 1, 2, 3}, {1}, {2}, {3}}, -1, []int{1}, []int{1}},
		{"three_but_not_four", [][]int{{0, 1, 2}, {0, 1, 2, 3}}, -1, []int{0, 1}, []int{1}},
		{"dead_entity", [][]int{{0, 1, 2, 3}}, 0, nil, nil},
		{"no_common", [][]int{{0}, {1}}, -1, nil, nil},
		{"missing_store", [][]int{{0}}, -1, nil, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			kinds := []component.ComponentKind[int]{
				component.NewComponentKind[int](),
				component.NewComponentKind[int](),
				component.NewComponentKind[int](),
				component.NewComponentKind[int](),
			}
			ents := make([]Entity, len(c.membership))
			index := map[Entity]int{}
			for i, ks := range c.membership {
				ents[i] = CreateEntity(w)
				index[ents[i]] = i
				for _, k := range ks {
					if err := Add(w, ents[i], kinds[k], intPtr(i)); err != nil {
						t.Fatal(err)
					}
				}
			}
			if c.destroy >= 0 {
				DestroyEntity(w, ents[c.destroy])
			}

			var got3, got4 []int
			ForEach3(w, kinds[0], kinds[1], kinds[2], func(e Entity, _, _, _ *int) { got3 = append(got3, index[e]) })
			ForEach4(w, kinds[0], kinds[1], kinds[2], kinds[3], func(e Entity, _, _, _, _ *int) { got4 = append(got4, index[e]) })
			if !sameInts(got3, c.want3) || !sameInts(got4, c.want4) {
				t.Fatalf("ForEach3=%v want %v, ForEach4=%v want %v", got3, c.want3, got4, c.want4)
			}
		})
	}
}

func sameInts(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	set := make(map[int]bool, len(got))
	for _, v := range got {
		set[v] = true
	}
	for _, v := range want {
		if !set[v] {
			return false
		}
	}
	return true
}
