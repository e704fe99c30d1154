package osm2noise

import (
	"math"
)

// RasterCell is single evaluated point of noise map
type RasterCell struct {
	Point Vec3
	Level float64
	Class NoiseClass
}

// Raster evaluates noise levels on a regular grid around center point.
//
// Grid points are dropped onto the ground and raised by configured height. Points without ground are skipped
func (sim *Simulation) Raster(center Vec3) []RasterCell {
	cfg := sim.Config
	gridPoints := rasterGrid(center, cfg.RasterRadius, cfg.GridSize)
	cells := make([]RasterCell, 0, len(gridPoints))
	for _, pt := range gridPoints {
		probe := Vec3{pt[0], pt[1], center[2] + cfg.RasterProbeHeight}
		hit, ok := sim.Query.RaycastDown(probe, 2*cfg.RasterProbeHeight, cfg.TerrainMask)
		if !ok {
			continue
		}
		point := hit.Point.Add(worldUp.Mul(cfg.RasterHeight))
		level := sim.LevelAt(point)
		cells = append(cells, RasterCell{
			Point: point,
			Level: level,
			Class: Classify(level),
		})
		if sim.Verbose && sim.Logger != nil {
			sim.Logger.Printf("Raster point %v: %.2f dB(A)\n", point, level)
		}
	}
	return cells
}

// rasterGrid returns horizontal grid points in [center-radius; center+radius] square with given step
func rasterGrid(center Vec3, radius, step float64) []Vec3 {
	if step <= 0 {
		return nil
	}
	n := int(math.Floor(2*radius/step + 1e-9))
	pts := make([]Vec3, 0, (n+1)*(n+1))
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			pts = append(pts, Vec3{
				center[0] - radius + float64(i)*step,
				center[1] - radius + float64(j)*step,
				center[2],
			})
		}
	}
	return pts
}
