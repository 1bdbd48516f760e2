package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello, World!":                   "hello-world",
		"  Go   Concurrency 101  ":        "go-concurrency-101",
		"Café & Crème Brûlée":             "cafe-creme-brulee",
		"---":                             "",
		"Introduction à la Programmation": "introduction-a-la-programmation",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}
