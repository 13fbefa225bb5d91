package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

// TriangleMesh is the single triangle drawn by the smoke test.
var TriangleMesh = Mesh{
	Vertices: []mgl32.Vec3{
		{0.0, 0.5, 0.0},
		{0.0, -0.5, 0.0},
		{0.5, 0.0, 0.0},
	},
	Indices: []uint32{0, 1, 2},
}

// DefaultBackground is the clear color.
var DefaultBackground = mgl32.Vec4{0.2, 0.4, 0.5, 1.0}

func (m Mesh) vertexData() []float32 {
	data := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		data = append(data, v[:]...)
	}
	return data
}

func (m Mesh) isEmpty() bool {
	return len(m.Vertices) == 0 || len(m.Indices) == 0
}
