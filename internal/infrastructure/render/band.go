package render

import (
	"github.com/techlabel/backend/internal/domain/shared"
)

// SeparatorWidthPx is the width of the cut-reference strip painted
// between labels in a band. The batch API accepts a separator margin
// parameter, but the compositor always uses this fixed gap.
const SeparatorWidthPx = 2

// Combine stitches equal-height rasters into one band, left to right.
// Between consecutive labels a full-height strip of the opposite
// polarity from the label background marks the cut position without
// spending a full blank margin of tape.
//
// Shorter rasters are top-aligned; the remainder stays background.
func Combine(rasters []*Raster) (*Raster, error) {
	if len(rasters) == 0 {
		return nil, shared.ErrEmptyInput
	}

	totalWidth := SeparatorWidthPx * (len(rasters) - 1)
	maxHeight := 0
	for _, r := range rasters {
		totalWidth += r.width
		if r.height > maxHeight {
			maxHeight = r.height
		}
	}

	out := NewStructured(totalWidth, maxHeight)
	x := 0
	for i, r := range rasters {
		for yy := 0; yy < r.height; yy++ {
			for xx := 0; xx < r.width; xx++ {
				if r.bit(xx, yy) {
					out.setBit(x+xx, yy, true)
				}
			}
		}
		x += r.width
		if i < len(rasters)-1 {
			for yy := 0; yy < maxHeight; yy++ {
				for sx := 0; sx < SeparatorWidthPx; sx++ {
					out.setBit(x+sx, yy, true)
				}
			}
			x += SeparatorWidthPx
		}
	}

	return out, nil
}
