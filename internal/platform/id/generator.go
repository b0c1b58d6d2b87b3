package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for newly created rows.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues random (v4) UUIDs, matching the uuid primary keys of
// the match and rule tables.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return value.String(), nil
}

// Valid reports whether raw is a well-formed UUID.
func Valid(raw string) bool {
	_, err := uuid.Parse(raw)
	return err == nil
}
