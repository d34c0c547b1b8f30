// Package normals resolves per-vertex normals for a decoded model: either
// passthrough of the stored byte-quantized normals or a full area-weighted
// recomputation from triangle adjacency.
package normals

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/TheDodylectableX/io-scene-xrm/xrm"
	"github.com/TheDodylectableX/io-scene-xrm/xrm/model"
)

// Mode selects the caller's normal policy.
type Mode int

const (
	// Passthrough uses stored normals and fails when none exist.
	Passthrough Mode = iota
	// Recompute regenerates normals from geometry, ignoring stored data.
	Recompute
)

// Triangles per accumulation range. Ranges are reduced in order, so the
// result does not depend on how goroutines are scheduled.
const accumRange = 4096

// Resolve applies the chosen mode to every submesh. Submeshes are
// independent and processed concurrently.
func Resolve(m *model.Model, mode Mode) error {
	if mode == Passthrough {
		for i, s := range m.Submeshes {
			if !s.HasNormals {
				return errors.Wrapf(xrm.ErrMissingNormals, "submesh %d (%q)", i, s.Name)
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	for _, s := range m.Submeshes {
		wg.Add(1)
		go func(s *model.Submesh) {
			defer wg.Done()
			RecomputeSubmesh(s)
		}(s)
	}
	wg.Wait()
	return nil
}

// RecomputeSubmesh regenerates smooth per-vertex normals. Each triangle's
// unnormalized cross product (twice its area times the face normal) is
// accumulated into the three vertices it references, then every sum is
// normalized. A zero-length sum falls back to the face normal of the first
// triangle referencing that vertex; degenerate geometry never fails.
// Identical input yields bit-identical output.
func RecomputeSubmesh(s *model.Submesh) {
	triCount := len(s.Indices) / 3
	rangeCount := (triCount + accumRange - 1) / accumRange

	faceNormals := make([]mgl32.Vec3, triCount)
	partial := make([][]mgl32.Vec3, rangeCount)

	var wg sync.WaitGroup
	for ri := 0; ri < rangeCount; ri++ {
		wg.Add(1)
		go func(ri int) {
			defer wg.Done()
			acc := make([]mgl32.Vec3, len(s.Vertices))
			lo := ri * accumRange
			hi := lo + accumRange
			if hi > triCount {
				hi = triCount
			}
			for t := lo; t < hi; t++ {
				a := s.Vertices[s.Indices[t*3]].Position
				b := s.Vertices[s.Indices[t*3+1]].Position
				c := s.Vertices[s.Indices[t*3+2]].Position
				// Counter-clockwise winding: cross of the two edges
				// points out of the front face.
				weighted := b.Sub(a).Cross(c.Sub(a))
				faceNormals[t] = weighted
				for k := 0; k < 3; k++ {
					vi := s.Indices[t*3+k]
					acc[vi] = acc[vi].Add(weighted)
				}
			}
			partial[ri] = acc
		}(ri)
	}
	wg.Wait()

	// Reduce partial sums in fixed range order.
	sums := make([]mgl32.Vec3, len(s.Vertices))
	for ri := 0; ri < rangeCount; ri++ {
		for vi := range sums {
			sums[vi] = sums[vi].Add(partial[ri][vi])
		}
	}

	firstFace := firstContributingTriangle(s, triCount)

	for vi := range s.Vertices {
		sum := sums[vi]
		if l := sum.Len(); l > 0 {
			s.Vertices[vi].Normal = sum.Mul(1.0 / l)
			continue
		}
		// Degenerate: all contributions cancelled or were zero-area.
		if t := firstFace[vi]; t >= 0 {
			if fl := faceNormals[t].Len(); fl > 0 {
				s.Vertices[vi].Normal = faceNormals[t].Mul(1.0 / fl)
				continue
			}
		}
		s.Vertices[vi].Normal = mgl32.Vec3{0, 0, 1}
	}
	s.HasNormals = true
}

func firstContributingTriangle(s *model.Submesh, triCount int) []int {
	first := make([]int, len(s.Vertices))
	for i := range first {
		first[i] = -1
	}
	for t := 0; t < triCount; t++ {
		for k := 0; k < 3; k++ {
			vi := s.Indices[t*3+k]
			if first[vi] < 0 {
				first[vi] = t
			}
		}
	}
	return first
}
