package grid

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a BLAKE2b-256 digest of the grid bounds and
// walkability. Two grids with equal fingerprints have identical layouts.
func (g *Grid) Fingerprint() [32]byte {
	buf := make([]byte, 12, 12+(len(g.cells)+7)/8)
	binary.LittleEndian.PutUint32(buf[0:], uint32(g.maxX))
	binary.LittleEndian.PutUint32(buf[4:], uint32(g.maxY))
	binary.LittleEndian.PutUint32(buf[8:], uint32(g.maxZ))

	var b byte
	for i := range g.cells {
		if g.cells[i].Walkable() {
			b |= 1 << (i % 8)
		}
		if i%8 == 7 {
			buf = append(buf, b)
			b = 0
		}
	}
	if len(g.cells)%8 != 0 {
		buf = append(buf, b)
	}
	return blake2b.Sum256(buf)
}
