package generator

import (
	"github.com/google/uuid"
)

// IDGenerator hands out identifiers for requests and events.
type IDGenerator interface {
	RequestID() string
	EventID() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) RequestID() string {
	return uuid.NewString()
}

func (g *UUIDGenerator) EventID() string {
	return uuid.NewString()
}
