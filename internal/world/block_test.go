package world

import "testing"

// TestBlockTypeString verifies names for the built-in set and the
// numbered fallback for unknown types
func TestBlockTypeString(t *testing.T) {
	cases := map[BlockType]string{
		BlockTypeAir:    "air",
		BlockTypeGrass:  "grass",
		BlockTypeDirt:   "dirt",
		BlockTypeStone:  "stone",
		BlockTypeWood:   "wood",
		BlockTypeLeaves: "leaves",
		BlockType(42):   "block#42",
	}
	for bt, want := range cases {
		if got := bt.String(); got != want {
			t.Errorf("String(%d) = %q, expected %q", uint16(bt), got, want)
		}
	}
}

// TestCubeVerticesShape verifies the shared cube a renderer instances:
// 36 vertices of position plus normal, corners on the half-unit cube,
// one constant outward unit normal per face
func TestCubeVerticesShape(t *testing.T) {
	const stride = 6
	if len(CubeVertices) != 36*stride {
		t.Fatalf("cube holds %d floats, expected 36 vertices of %d", len(CubeVertices), stride)
	}

	for face := 0; face < 6; face++ {
		base := face * 6 * stride
		nx, ny, nz := CubeVertices[base+3], CubeVertices[base+4], CubeVertices[base+5]
		if nx*nx+ny*ny+nz*nz != 1 {
			t.Errorf("face %d normal (%g %g %g) is not unit length", face, nx, ny, nz)
		}
		for v := 0; v < 6; v++ {
			off := base + v*stride
			for axis := 0; axis < 3; axis++ {
				if p := CubeVertices[off+axis]; p != 0.5 && p != -0.5 {
					t.Errorf("face %d vertex %d axis %d sits at %g, expected a corner", face, v, axis, p)
				}
			}
			if CubeVertices[off+3] != nx || CubeVertices[off+4] != ny || CubeVertices[off+5] != nz {
				t.Errorf("face %d vertex %d normal differs from the face normal", face, v)
			}
			if dot := CubeVertices[off]*nx + CubeVertices[off+1]*ny + CubeVertices[off+2]*nz; dot != 0.5 {
				t.Errorf("face %d vertex %d lies at %g along its normal, expected the outward plane", face, v, dot)
			}
		}
	}
}
