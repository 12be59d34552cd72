package embed

// #region imports
import (
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// #endregion

// #region embedder

// DefaultDim is the default embedding dimension.
const DefaultDim = 384

// Embedder turns proposal text into a fixed-length vector via hashed
// bag-of-words. It is deterministic: the same text always produces the
// same vector, across processes and runs. Near-duplicate phrases share
// most token buckets and therefore land close together.
type Embedder struct {
	dim int
}

// NewEmbedder creates an Embedder with the given dimension.
// dim <= 0 falls back to DefaultDim.
func NewEmbedder(dim int) *Embedder {
	if dim <= 0 {
		dim = DefaultDim
	}
	return &Embedder{dim: dim}
}

// Dim returns the embedding dimension.
func (e *Embedder) Dim() int {
	return e.dim
}

// #endregion embedder

// #region embed

// Embed maps text to an L2-normalized vector. Each token is hashed once
// with SHA-256 and contributes two signed buckets drawn from independent
// words of the digest; the sign bit makes unrelated tokens cancel rather
// than accumulate. Spreading a token over two buckets halves the mass a
// single accidental bucket collision can move two disjoint phrases
// toward each other, keeping them outside the clustering radius. Empty
// or all-stopword text yields the zero vector, which is safe in all
// downstream distance computations.
func (e *Embedder) Embed(text string) []float32 {
	vec := make([]float32, e.dim)

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	for _, tok := range tokens {
		sum := sha256.Sum256([]byte(tok))
		for i := 0; i < 2; i++ {
			v := binary.BigEndian.Uint32(sum[4*i:])
			bucket := int(v % uint32(e.dim))
			sign := float32(1)
			if v&0x80000000 != 0 {
				sign = -1
			}
			vec[bucket] += sign
		}
	}

	normalize(vec)
	return vec
}

// normalize scales vec to unit L2 norm in place. The zero vector is left
// untouched.
func normalize(vec []float32) {
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		return
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range vec {
		vec[i] /= norm
	}
}

// #endregion embed

// #region distance

// EuclideanDistance computes the L2 distance between two vectors.
// Equal lengths are the caller's invariant; indexing follows a.
func EuclideanDistance(a, b []float32) float64 {
	var sumSq float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sumSq += d * d
	}
	return math.Sqrt(sumSq)
}

// CosineSimilarity computes cosine similarity between two vectors.
// Returns 0 for zero-norm or mismatched vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// #endregion distance
