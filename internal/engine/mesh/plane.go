package mesh

// Plane builds a width x height rectangle in the XY plane facing +Z, split
// into segX x segY quads. Texture coordinates run left to right in U and top
// to bottom in V, matching the row order of decoded images. Segment counts
// below 1 are treated as 1.
func Plane(width, height float32, segX, segY int) *Mesh {
	segX = max(segX, 1)
	segY = max(segY, 1)

	cols := segX + 1
	rows := segY + 1
	halfW := width / 2
	halfH := height / 2
	stepW := width / float32(segX)
	stepH := height / float32(segY)

	m := &Mesh{
		Vertices: make([]Vertex, 0, cols*rows),
		Indices:  make([]uint32, 0, segX*segY*6),
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	normal := [3]float32{0, 0, 1}
	for iy := range rows {
		// Top row first
		y := halfH - float32(iy)*stepH
		for ix := range cols {
			x := float32(ix)*stepW - halfW
			pos := [3]float32{x, y, 0}
			updateBounds(&m.Bounds, pos)
			m.Vertices = append(m.Vertices, Vertex{
				Position: pos,
				Normal:   normal,
				TexCoord: [2]float32{float32(ix) / float32(segX), float32(iy) / float32(segY)},
			})
		}
	}

	// Two counter-clockwise triangles per quad
	for iy := range segY {
		for ix := range segX {
			a := uint32(iy*cols + ix)     // top-left
			b := uint32((iy+1)*cols + ix) // bottom-left
			c := b + 1                    // bottom-right
			d := a + 1                    // top-right
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}

	return m
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
