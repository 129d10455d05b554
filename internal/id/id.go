// Package id supplies transaction ID generators. The generator is injected
// wherever IDs are minted so tests can substitute a deterministic sequence.
package id

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator mints opaque unique identifiers.
type Generator func() string

// Random returns the production generator, backed by random UUIDs.
func Random() Generator {
	return uuid.NewString
}

// Sequential returns a deterministic generator for tests: prefix-1,
// prefix-2, and so on. Generators are minted from parallel file parses,
// so the counter is atomic.
func Sequential(prefix string) Generator {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
