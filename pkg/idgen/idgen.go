package idgen

import "github.com/google/uuid"

// Generator produz identificadores únicos para novas entidades
type Generator interface {
	NewID() string
}

// UUID gera identificadores UUID v4
type UUID struct{}

// NewID implementa Generator.NewID
func (UUID) NewID() string {
	return uuid.New().String()
}

// Func adapta uma função para a interface Generator
type Func func() string

// NewID implementa Generator.NewID
func (f Func) NewID() string {
	return f()
}
