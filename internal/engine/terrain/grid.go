package terrain

// BuildGrid creates a dim x dim grid over [-1, 1]. Row j sits at
// z = 1 - 2j/(dim-1) and each pair of rows forms one triangle strip
// terminated by PrimitiveRestart.
func BuildGrid(dim int) *Grid {
	dim = max(dim, 2)
	n := float32(dim - 1)

	g := &Grid{
		Dim:      dim,
		Vertices: make([]float32, 0, dim*dim*2),
		Indices:  make([]uint32, 0, (dim-1)*(2*dim+1)),
	}
	for j := range dim {
		for i := range dim {
			g.Vertices = append(g.Vertices, -1+2*float32(i)/n, 1-2*float32(j)/n)
		}
	}
	for j := 0; j < dim-1; j++ {
		for i := range dim {
			g.Indices = append(g.Indices, uint32((j+1)*dim+i), uint32(j*dim+i))
		}
		g.Indices = append(g.Indices, PrimitiveRestart)
	}
	return g
}
