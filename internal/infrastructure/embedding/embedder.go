// Package embedding provides deterministic text vectorization and the
// cosine-similarity matcher used by the local analysis pipeline.
package embedding

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/iotguard/iotguard/internal/ports"
)

const defaultDimensions = 256

// HashingEmbedder maps text to a fixed-size vector by feature-hashing word
// unigrams and bigrams into buckets. It needs no model files or network
// access, and identical input always produces the identical vector.
type HashingEmbedder struct {
	dims int
}

// NewHashingEmbedder returns an embedder producing 256-dimensional vectors.
func NewHashingEmbedder() *HashingEmbedder {
	return &HashingEmbedder{dims: defaultDimensions}
}

// Dimensions reports the vector size.
func (e *HashingEmbedder) Dimensions() int {
	return e.dims
}

// Embed vectorizes the text. The result is L2-normalized so dot products of
// two embeddings are their cosine similarity; empty or whitespace-only input
// yields the zero vector.
func (e *HashingEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.dims)
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	for _, tok := range tokens {
		vec[bucket(tok, e.dims)]++
	}
	for i := 0; i+1 < len(tokens); i++ {
		vec[bucket(tokens[i]+" "+tokens[i+1], e.dims)]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func bucket(token string, dims int) int {
	h := fnv.New32a()
	h.Write([]byte(token))
	return int(h.Sum32() % uint32(dims))
}

var _ ports.Embedder = (*HashingEmbedder)(nil)
