// Package randid provides short random identifiers.
package randid

import "math/rand/v2"

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate creates a random lowercase alphanumeric ID of the given length.
func Generate(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Unique generates IDs until one is not reported as taken.
func Unique(length int, taken func(id string) bool) string {
	for {
		id := Generate(length)
		if !taken(id) {
			return id
		}
	}
}
