package osm2noise

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

type OSMDataRaw struct {
	nodes map[osm.NodeID]GeoPoint
	ways  []*WayData
}

// newScanner picks decoder by file extension
func newScanner(filename string, file io.Reader) (OSMScanner, error) {
	switch ext := filepath.Ext(filename); ext {
	case ".osm", ".xml":
		return osmxml.New(context.Background(), file), nil
	case ".pbf":
		return osmpbf.New(context.Background(), file, 4), nil
	default:
		return nil, errors.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// scanPass runs single pass over the file from its start and calls handle for every object of given type
func scanPass(filename string, file io.ReadSeeker, objType osm.Type, verbose bool, handle func(obj osm.Object)) error {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "Can't rewind file before scanning for %s objects", objType)
	}
	if verbose {
		fmt.Printf("\tProcessing %s objects... ", objType)
	}
	st := time.Now()
	scanner, err := newScanner(filename, file)
	if err != nil {
		return err
	}
	defer scanner.Close()
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != objType {
			continue
		}
		handle(obj)
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "Can't scan %s objects", objType)
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}
	return nil
}

// readOSM collects building ways first and then only the nodes those ways reference
func readOSM(filename string, verbose bool) (*OSMDataRaw, error) {
	if verbose {
		fmt.Printf("Opening file: '%s'...\n", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data := &OSMDataRaw{
		nodes: make(map[osm.NodeID]GeoPoint),
		ways:  []*WayData{},
	}
	referenced := make(map[osm.NodeID]struct{})
	err = scanPass(filename, file, osm.TypeWay, verbose, func(obj osm.Object) {
		way := obj.(*osm.Way)
		candidate := &WayData{
			ID:     way.ID,
			Nodes:  way.Nodes.NodeIDs(),
			TagMap: append(osm.Tags{}, way.Tags...),
		}
		candidate.processTags(verbose)
		if !candidate.isBuilding() {
			return
		}
		for _, nodeID := range candidate.Nodes {
			referenced[nodeID] = struct{}{}
		}
		data.ways = append(data.ways, candidate)
	})
	if err != nil {
		return nil, err
	}

	err = scanPass(filename, file, osm.TypeNode, verbose, func(obj osm.Object) {
		node := obj.(*osm.Node)
		if _, ok := referenced[node.ID]; ok {
			data.nodes[node.ID] = GeoPoint{Lon: node.Lon, Lat: node.Lat}
		}
	})
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Number of building ways: %d\n", len(data.ways))
		fmt.Printf("Number of nodes: %d\n", len(data.nodes))
	}
	return data, nil
}

// wayGeometry returns outline of the way. False is returned when some of the nodes are missing (e.g. way crosses border of the extract)
func (data *OSMDataRaw) wayGeometry(way *WayData) ([]GeoPoint, bool) {
	pts := make([]GeoPoint, 0, len(way.Nodes))
	for _, nodeID := range way.Nodes {
		pt, ok := data.nodes[nodeID]
		if !ok {
			return nil, false
		}
		pts = append(pts, pt)
	}
	return pts, true
}

// centroid returns center of every node used by buildings
func (data *OSMDataRaw) centroid() (GeoPoint, bool) {
	if len(data.nodes) == 0 {
		return GeoPoint{}, false
	}
	ids := make([]osm.NodeID, 0, len(data.nodes))
	for id := range data.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	pts := make([]GeoPoint, len(ids))
	for i, id := range ids {
		pts[i] = data.nodes[id]
	}
	return findCentroid(pts), true
}
