// Package raster turns grid snapshots into RGB frames.
//
// Each grid cell becomes a uniform scale×scale block of pixels in the
// palette color of its label. Upscaling is nearest-neighbor block
// replication, never interpolation, so a frame contains no colors outside
// the palette and cell boundaries stay crisp even for tiny grids.
package raster

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/render/snapshot"
)

// Rasterize renders a snapshot as an RGB image of exactly
// (cols·scale) × (rows·scale) pixels.
//
// The snapshot is painted one pixel per cell, then replicated up by the
// integer scale factor with a nearest-neighbor resample. Scale must be at
// least 1; anything smaller is rejected with an INVALID_SCALE error.
func Rasterize(s *snapshot.Snapshot, pal Palette, scale int) (*image.NRGBA, error) {
	if scale < 1 {
		return nil, errors.New(errors.ErrCodeInvalidScale, "scale %d, want >= 1", scale)
	}

	rows, cols := s.Rows(), s.Cols()
	base := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			base.SetNRGBA(c, r, pal.Color(s.At(r, c)))
		}
	}

	if scale == 1 {
		return base, nil
	}
	return imaging.Resize(base, cols*scale, rows*scale, imaging.NearestNeighbor), nil
}
