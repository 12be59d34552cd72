package cluster

// #region imports
import (
	"fmt"

	"github.com/chappy-ai/digital-cortex/go-consensus/internal/embed"
)

// #endregion

// #region config

// Noise is the label assigned to points that belong to no cluster.
const Noise = -1

// Config holds the density clustering knobs.
type Config struct {
	Eps       float64 // max distance for two points to be neighbors
	MinPoints int     // min neighborhood size (self included) for a core point
}

// DefaultConfig returns parameters tuned for the hashed bag-of-words
// embedder: unit vectors sharing roughly a third of their token mass sit
// inside Eps, fully disjoint phrases sit at sqrt(2) outside it.
func DefaultConfig() Config {
	return Config{
		Eps:       1.2,
		MinPoints: 2,
	}
}

// #endregion config

// #region assignment

// Assignment maps each input vector to a cluster id or Noise.
type Assignment struct {
	// Labels[i] is the cluster id of vectors[i], or Noise.
	Labels []int
	// Count is the number of clusters found (ids are 0..Count-1).
	Count int
}

// Members returns the input indexes assigned to cluster id, in input order.
func (a Assignment) Members(id int) []int {
	var idx []int
	for i, l := range a.Labels {
		if l == id {
			idx = append(idx, i)
		}
	}
	return idx
}

// #endregion assignment

// #region run

// Run performs DBSCAN over the given vectors. Two points are neighbors
// when their Euclidean distance is <= Eps; a point with at least
// MinPoints neighbors (counting itself) is a core point; clusters are
// grown from core points in input order, so border points equidistant
// from two clusters join the earlier-seen one. The result is fully
// deterministic for a fixed input order.
//
// A ragged input (vectors of differing lengths) is a programming error
// and returns an error rather than a guessed assignment.
func Run(vectors [][]float32, cfg Config) (Assignment, error) {
	n := len(vectors)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = Noise
	}

	if n == 0 {
		return Assignment{Labels: labels}, nil
	}
	if err := validate(vectors); err != nil {
		return Assignment{}, err
	}

	neighbors := neighborLists(vectors, cfg.Eps)

	visited := make([]bool, n)
	nextID := 0

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		if len(neighbors[i]) < cfg.MinPoints {
			continue // not a core point; may still join a cluster as a border point
		}

		expand(i, nextID, neighbors, labels, visited, cfg.MinPoints)
		nextID++
	}

	return Assignment{Labels: labels, Count: nextID}, nil
}

// expand grows cluster id from core point seed via a FIFO queue, which
// preserves input-order determinism.
func expand(seed, id int, neighbors [][]int, labels []int, visited []bool, minPoints int) {
	labels[seed] = id
	queue := append([]int(nil), neighbors[seed]...)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if labels[p] == Noise {
			labels[p] = id
		}
		if visited[p] {
			continue
		}
		visited[p] = true

		// Only core points extend the frontier; border points join but
		// do not recruit.
		if len(neighbors[p]) >= minPoints {
			queue = append(queue, neighbors[p]...)
		}
	}
}

// #endregion run

// #region helpers

// neighborLists builds, for each point, the input-ordered list of points
// within eps (including the point itself).
func neighborLists(vectors [][]float32, eps float64) [][]int {
	n := len(vectors)
	lists := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if embed.EuclideanDistance(vectors[i], vectors[j]) <= eps {
				lists[i] = append(lists[i], j)
			}
		}
	}
	return lists
}

// validate rejects ragged vector input.
func validate(vectors [][]float32) error {
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), dim)
		}
	}
	return nil
}

// #endregion helpers
