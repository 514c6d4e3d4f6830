// Package component defines the data attached to entities. Components are
// plain structs; behaviour lives in systems.
package component

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID is unique per registered component type.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind is the typed key used to store and fetch a component.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// String returns the component's type name, for logs.
func (k ComponentKind[T]) String() string {
	if k.name == "" {
		return fmt.Sprintf("component#%d", k.id)
	}
	return k.name
}

// ComponentHandle is the package-level registration of a component type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent registers T and returns its handle. Call once per type, at
// package init.
func NewComponent[T any]() ComponentHandle[T] {
	var zero T
	name := strings.TrimPrefix(fmt.Sprintf("%T", zero), "component.")
	return ComponentHandle[T]{kind: ComponentKind[T]{
		id:   ComponentID(nextComponentID.Add(1)),
		name: name,
	}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
