package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/LdDl/osm2noise"
	"github.com/pkg/errors"
)

var (
	osmFileName = flag.String("file", "", "Filename of *.osm / *.osm.pbf file with buildings. Empty means open field")
	cfgFileName = flag.String("config", "", "Filename of JSON configuration. Empty means defaults")
	sourcesStr  = flag.String("sources", "0,0,0.05", "Positions of noise sources in local meters: 'x,y,z;x,y,z'")
	listenerStr = flag.String("listener", "50,0,1.5", "Position of listener in local meters: 'x,y,z'")
	speed       = flag.Float64("speed", 50, "Average speed of vehicles (km/h)")
	category    = flag.String("category", "light", "Vehicle category. Expected values: light / medium / heavy / 4a / 4b")
	out         = flag.String("out", "noise.geojson", "Filename of GeoJSON file with propagation paths, image sources and noise map points (when -raster is set)")
	doRaster    = flag.Bool("raster", false, "Evaluate noise map around listener?")
	rasterOut   = flag.String("raster_out", "noise_map.csv", "Filename of 'Comma-Separated Values' (CSV) formatted noise map")
	radius      = flag.Float64("radius", 0, "Skip buildings farther than given radius (kilometers) from center of the data. Zero means no limit")
	verbose     = flag.Bool("verbose", false, "Print progress and branch decisions")
)

func main() {

	flag.Parse()

	cfg := osm2noise.DefaultConfiguration()
	if *cfgFileName != "" {
		var err error
		cfg, err = osm2noise.LoadConfiguration(*cfgFileName)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
	if *verbose {
		fmt.Println(cfg)
	}

	var projection *osm2noise.LocalProjection
	buildings := []osm2noise.Building{}
	if *osmFileName != "" {
		parser := osm2noise.NewParser(*osmFileName, osm2noise.WithParserVerbose(*verbose), osm2noise.WithRadius(*radius))
		var err error
		buildings, projection, err = parser.ReadBuildings()
		if err != nil {
			fmt.Println(err)
			return
		}
	}
	scene, err := osm2noise.NewScene(osm2noise.FlatTerrain(0), buildings...)
	if err != nil {
		fmt.Println(err)
		return
	}

	listener, err := parseVec3(*listenerStr)
	if err != nil {
		fmt.Println(errors.Wrap(err, "Bad listener position"))
		return
	}
	vehicleCategory, err := osm2noise.ParseVehicleCategory(*category)
	if err != nil {
		fmt.Println(err)
		return
	}
	vehicle := osm2noise.NewVehicle(vehicleCategory, *speed)
	emitters := []osm2noise.NoiseEmitter{}
	for i, sourceStr := range strings.Split(*sourcesStr, ";") {
		position, err := parseVec3(sourceStr)
		if err != nil {
			fmt.Println(errors.Wrapf(err, "Bad position of source #%d", i))
			return
		}
		emitters = append(emitters, osm2noise.NoiseEmitter{
			Name:     fmt.Sprintf("source_%d", i),
			Position: position,
			Source:   vehicle,
		})
	}

	sim := osm2noise.NewSimulation(scene, cfg, emitters...)
	sim.Verbose = *verbose
	sim.Logger = log.New(os.Stdout, "", log.LstdFlags)

	st := time.Now()
	results := sim.Run(listener)
	fmt.Printf("Propagation done in %v\n", time.Since(st))
	for _, result := range results {
		fmt.Printf("%s: %d image sources, %.2f dB(A)\n", result.Name, len(result.Images), result.AWeighted())
		graph, err := osm2noise.NewPathGraph(result.Tree)
		if err != nil {
			fmt.Println(err)
			return
		}
		cost, chain := graph.ShortestPath()
		if cost >= 0 {
			fmt.Printf("\tdominant path: %.2f m %s\n", cost, osm2noise.PrepareWKTLinestring(result.Tree, chain))
		}
	}

	cells := []osm2noise.RasterCell{}
	if *doRaster {
		st = time.Now()
		cells = sim.Raster(listener)
		fmt.Printf("Noise map of %d points done in %v\n", len(cells), time.Since(st))
	}

	exporter := osm2noise.NewGeoJSONExporter(projection)
	fc := exporter.FeatureCollection(results)
	for _, feature := range exporter.RasterFeatures(cells) {
		fc.AddFeature(feature)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		fmt.Println(err)
		return
	}
	err = os.WriteFile(*out, b, 0644)
	if err != nil {
		fmt.Println(errors.Wrap(err, "Can't write GeoJSON file"))
		return
	}

	if !*doRaster {
		return
	}
	fileRaster, err := os.Create(*rasterOut)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer fileRaster.Close()
	writerRaster := csv.NewWriter(fileRaster)
	defer writerRaster.Flush()
	writerRaster.Comma = ';'
	// 		x, y, z - float64, Position of evaluated point (local meters)
	// 		level - float64, A-weighted sound level (dB)
	// 		class - string, Danger level of noise
	//      geom - geometry (WKT representation)
	err = writerRaster.Write([]string{"x", "y", "z", "level", "class", "geom"})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, cell := range cells {
		err = writerRaster.Write([]string{
			fmt.Sprintf("%f", cell.Point[0]),
			fmt.Sprintf("%f", cell.Point[1]),
			fmt.Sprintf("%f", cell.Point[2]),
			fmt.Sprintf("%f", cell.Level),
			cell.Class.String(),
			osm2noise.PrepareWKTPoint(cell.Point),
		})
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}

func parseVec3(s string) (osm2noise.Vec3, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return osm2noise.Vec3{}, errors.Errorf("Expected 'x,y,z', got '%s'", s)
	}
	var v osm2noise.Vec3
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return osm2noise.Vec3{}, errors.Wrapf(err, "Can't parse coordinate '%s'", part)
		}
		v[i] = value
	}
	return v, nil
}
