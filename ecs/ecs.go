// Package ecs is a small entity-component registry. Components are plain Go
// values stored per type; entities are recycled IDs.
package ecs

import (
	"reflect"
	"slices"
)

type EntityID uint32

// EntityManager hands out entity IDs, reusing destroyed ones oldest first.
type EntityManager struct {
	next  EntityID
	free  []EntityID
	alive map[EntityID]bool
}

func NewEntityManager() *EntityManager {
	return &EntityManager{alive: make(map[EntityID]bool)}
}

func (m *EntityManager) Create() EntityID {
	var id EntityID
	if len(m.free) > 0 {
		id = m.free[0]
		m.free = m.free[1:]
	} else {
		id = m.next
		m.next++
	}
	m.alive[id] = true
	return id
}

// Destroy frees id for reuse. Destroying a dead entity is a no-op.
func (m *EntityManager) Destroy(id EntityID) {
	if !m.alive[id] {
		return
	}
	delete(m.alive, id)
	m.free = append(m.free, id)
}

func (m *EntityManager) IsAlive(id EntityID) bool {
	return m.alive[id]
}

func (m *EntityManager) Len() int {
	return len(m.alive)
}

type storage interface {
	remove(id EntityID)
}

// Storage holds the components of one type.
type Storage[T any] struct {
	data map[EntityID]T
}

func (s *Storage[T]) remove(id EntityID) {
	delete(s.data, id)
}

// Registry ties entities to their component storages.
type Registry struct {
	entities *EntityManager
	storages map[reflect.Type]storage
}

func NewRegistry() *Registry {
	return &Registry{
		entities: NewEntityManager(),
		storages: make(map[reflect.Type]storage),
	}
}

func (r *Registry) CreateEntity() EntityID {
	return r.entities.Create()
}

// DeleteEntity removes every component of id and frees the ID.
func (r *Registry) DeleteEntity(id EntityID) {
	for _, s := range r.storages {
		s.remove(id)
	}
	r.entities.Destroy(id)
}

func (r *Registry) IsAlive(id EntityID) bool {
	return r.entities.IsAlive(id)
}

func storageOf[T any](r *Registry) *Storage[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := r.storages[key]; ok {
		return s.(*Storage[T])
	}
	s := &Storage[T]{data: make(map[EntityID]T)}
	r.storages[key] = s
	return s
}

// Add sets id's component of type T, replacing any existing one. Adding to
// a dead entity is ignored.
func Add[T any](r *Registry, id EntityID, c T) {
	if !r.entities.IsAlive(id) {
		return
	}
	storageOf[T](r).data[id] = c
}

func Get[T any](r *Registry, id EntityID) (T, bool) {
	c, ok := storageOf[T](r).data[id]
	return c, ok
}

func Has[T any](r *Registry, id EntityID) bool {
	_, ok := storageOf[T](r).data[id]
	return ok
}

func Remove[T any](r *Registry, id EntityID) {
	storageOf[T](r).remove(id)
}

// Update replaces id's T with fn applied to it. It reports whether id had one.
func Update[T any](r *Registry, id EntityID, fn func(T) T) bool {
	s := storageOf[T](r)
	c, ok := s.data[id]
	if ok {
		s.data[id] = fn(c)
	}
	return ok
}

// Each visits every entity with a T in ascending ID order, so iteration is
// stable from frame to frame.
func Each[T any](r *Registry, fn func(EntityID, T)) {
	s := storageOf[T](r)
	ids := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fn(id, s.data[id])
	}
}
