package ecs

import "fmt"

// Entity packs a slot index in the low 32 bits and the slot's generation in
// the high 32 bits. Zero is never a live entity.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID { return entityID(uint32(e)) }

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String renders the entity as slot.generation.
func (e Entity) String() string {
	return fmt.Sprintf("%d.%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e > 0
}

// Ref returns the entity as a plain value for storing in components.
func (e Entity) Ref() uint64 { return uint64(e) }

// FromRef turns a stored reference back into an entity.
func FromRef(ref uint64) Entity { return Entity(ref) }
