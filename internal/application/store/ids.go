package store

import "github.com/google/uuid"

// IDGenerator produce un ID único con el prefijo del tipo de entidad.
type IDGenerator func(prefix string) string

// UUIDGenerator genera "<prefijo><uuid v4>", sin colisiones aunque se creen varias entidades en el mismo milisegundo.
func UUIDGenerator(prefix string) string {
	return prefix + uuid.NewString()
}
