package osm2noise

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/paulmach/osm"
)

const (
	// Height of single storey for `building:levels` tag
	levelHeight = 3.0
	// Height of building without any height information
	defaultBuildingHeight = 10.0
)

// WayData is an OSM way tagged as building
type WayData struct {
	ID       osm.WayID
	Nodes    []osm.NodeID
	TagMap   osm.Tags
	building string
	name     string
	// Negative values mean "not provided"
	height    float64
	minHeight float64
	levels    float64
	minLevel  float64
}

var (
	metersRegExp = regexp.MustCompile(`^\s*(\d+\.?\d*)\s*m?\s*$`)
	feetRegExp   = regexp.MustCompile(`^\s*(\d+\.?\d*)\s*(ft|')\s*$`)
	levelsRegExp = regexp.MustCompile(`\d+\.?\d*`)
)

func (way *WayData) processTags(verbose bool) {
	way.building = way.TagMap.Find("building")
	way.name = way.TagMap.Find("name")
	way.height = parseHeight(way.TagMap.Find("height"), way.ID, "height", verbose)
	way.minHeight = parseHeight(way.TagMap.Find("min_height"), way.ID, "min_height", verbose)
	way.levels = parseLevels(way.TagMap.Find("building:levels"), way.ID, "building:levels", verbose)
	way.minLevel = parseLevels(way.TagMap.Find("building:min_level"), way.ID, "building:min_level", verbose)
}

// isBuilding checks if way is a closed building outline
func (way *WayData) isBuilding() bool {
	if way.building == "" {
		return false
	}
	if _, ok := negligibleBuildingTags[way.building]; ok {
		return false
	}
	return len(way.Nodes) >= 4 && way.Nodes[0] == way.Nodes[len(way.Nodes)-1]
}

// levelsRange returns base and top of the building (meters above ground)
func (way *WayData) levelsRange() (float64, float64) {
	base := 0.0
	switch {
	case way.minHeight >= 0:
		base = way.minHeight
	case way.minLevel >= 0:
		base = way.minLevel * levelHeight
	}
	top := defaultBuildingHeight
	switch {
	case way.height >= 0:
		top = way.height
	case way.levels >= 0:
		top = way.levels * levelHeight
	}
	if top <= base {
		top = base + levelHeight
	}
	return base, top
}

// parseHeight parses tag value like "12", "12.5 m" or "40 ft" into meters. Returns -1 if value is empty or broken
func parseHeight(value string, wayID osm.WayID, tag string, verbose bool) float64 {
	if value == "" {
		return -1
	}
	multiplier := 1.0
	match := metersRegExp.FindStringSubmatch(value)
	if match == nil {
		match = feetRegExp.FindStringSubmatch(value)
		multiplier = 0.3048
	}
	if match == nil {
		if verbose {
			fmt.Printf("[WARNING]: Provided `%s` tag value should be a number (meters or feet). Got '%s'. Way ID: '%d'\n", tag, value, wayID)
		}
		return -1
	}
	height, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return -1
	}
	return height * multiplier
}

// parseLevels parses number of storeys. Returns -1 if value is empty or broken
func parseLevels(value string, wayID osm.WayID, tag string, verbose bool) float64 {
	if value == "" {
		return -1
	}
	levelsNum := levelsRegExp.FindString(value)
	levels, err := strconv.ParseFloat(levelsNum, 64)
	if err != nil {
		if verbose {
			fmt.Printf("[WARNING]: Provided `%s` tag value should be a number. Got '%s'. Way ID: '%d'\n", tag, value, wayID)
		}
		return -1
	}
	return levels
}
