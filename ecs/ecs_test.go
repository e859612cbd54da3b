package ecs

import (
	"reflect"
	"testing"
)

type position struct{ X, Y float32 }
type velocity struct{ X, Y float32 }

func TestEntityRecycling(t *testing.T) {
	m := NewEntityManager()
	a, b, c := m.Create(), m.Create(), m.Create()
	if a != 0 || b != 1 || c != 2 {
		t.Fatalf("ids = %d %d %d", a, b, c)
	}
	m.Destroy(b)
	m.Destroy(a)
	m.Destroy(a)
	if m.IsAlive(a) || m.IsAlive(b) || !m.IsAlive(c) {
		t.Errorf("alive: a=%v b=%v c=%v", m.IsAlive(a), m.IsAlive(b), m.IsAlive(c))
	}
	if got := m.Create(); got != b {
		t.Errorf("first reuse = %d, want %d", got, b)
	}
	if got := m.Create(); got != a {
		t.Errorf("second reuse = %d, want %d", got, a)
	}
	if got := m.Create(); got != 3 {
		t.Errorf("fresh id = %d, want 3", got)
	}
	if m.Len() != 4 {
		t.Errorf("len = %d", m.Len())
	}
}

func TestRegistryComponents(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()
	Add(r, e, position{1, 2})
	Add(r, e, velocity{3, 4})

	if p, ok := Get[position](r, e); !ok || p != (position{1, 2}) {
		t.Errorf("position = %v, %v", p, ok)
	}
	if !Has[velocity](r, e) {
		t.Errorf("velocity missing")
	}

	Update(r, e, func(p position) position {
		v, _ := Get[velocity](r, e)
		return position{p.X + v.X, p.Y + v.Y}
	})
	if p, _ := Get[position](r, e); p != (position{4, 6}) {
		t.Errorf("updated position = %v", p)
	}

	Remove[velocity](r, e)
	if Has[velocity](r, e) {
		t.Errorf("velocity not removed")
	}
}

func TestRegistryDeleteEntity(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()
	Add(r, e, position{1, 1})
	r.DeleteEntity(e)

	if r.IsAlive(e) || Has[position](r, e) {
		t.Errorf("entity data survived deletion")
	}
	Add(r, e, position{9, 9})
	if Has[position](r, e) {
		t.Errorf("component added to a dead entity")
	}

	// The recycled id starts clean.
	e2 := r.CreateEntity()
	if e2 != e || Has[position](r, e2) {
		t.Errorf("recycled entity %d carries old components", e2)
	}
}

func TestEachOrdered(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		e := r.CreateEntity()
		if i%2 == 0 {
			Add(r, e, position{float32(i), 0})
		}
	}
	var seen []EntityID
	Each(r, func(id EntityID, p position) {
		seen = append(seen, id)
	})
	if want := []EntityID{0, 2, 4}; !reflect.DeepEqual(seen, want) {
		t.Errorf("visited %v, want %v", seen, want)
	}
}
