package encoder

import "fmt"

// Matrix is a square QR bit-matrix as handed to the renderer.
//
// Each byte's low bit marks a dark module. Size is the physical side length,
// which includes any quiet zone the backend baked in; OriginalSize is the
// logical symbol size in modules.
type Matrix struct {
	Data         []byte
	Size         int
	OriginalSize int
}

// Validate checks the structural invariants of m.
func (m Matrix) Validate() error {
	if m.OriginalSize <= 0 {
		return fmt.Errorf("invalid logical size %d", m.OriginalSize)
	}
	if m.Size < m.OriginalSize {
		return fmt.Errorf("physical size %d smaller than logical size %d", m.Size, m.OriginalSize)
	}
	if (m.Size-m.OriginalSize)%2 != 0 {
		return fmt.Errorf("asymmetric quiet zone: physical %d, logical %d", m.Size, m.OriginalSize)
	}
	if len(m.Data) != m.Size*m.Size {
		return fmt.Errorf("data length %d does not match %dx%d", len(m.Data), m.Size, m.Size)
	}
	return nil
}

// QuietZone returns the number of embedded quiet-zone modules on each side.
func (m Matrix) QuietZone() int { return (m.Size - m.OriginalSize) / 2 }

// IsSet reports whether the module at physical coordinate (x, y) is dark.
func (m Matrix) IsSet(x, y int) bool { return m.Data[y*m.Size+x]&0x1 != 0 }

// Empty reports whether m carries no symbol.
func (m Matrix) Empty() bool { return len(m.Data) == 0 || m.OriginalSize == 0 }

// fromGrid packs a square boolean grid with margin quiet-zone modules on
// every side into a Matrix.
func fromGrid(size, margin int, at func(x, y int) bool) Matrix {
	data := make([]byte, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if at(x, y) {
				data[y*size+x] = 1
			}
		}
	}
	return Matrix{Data: data, Size: size, OriginalSize: size - 2*margin}
}
