package osm2noise

import (
	"fmt"
)

// Parser loads buildings from OSM extracts
type Parser struct {
	filename        string
	verbose         bool
	groundElevation float64
	origin          *GeoPoint
	radius          float64
}

func (parser *Parser) String() string {
	origin := "centroid of the data"
	if parser.origin != nil {
		origin = parser.origin.String()
	}
	return fmt.Sprintf(`
Buildings parser parameters:
	filename: '%s'
	verbose: %t
	ground_elevation: %f
	origin: '%s'
	radius_km: %f
	`,
		parser.filename,
		parser.verbose,
		parser.groundElevation,
		origin,
		parser.radius,
	)
}

func NewParser(fileName string, options ...func(*Parser)) *Parser {
	parser := &Parser{
		filename: fileName,
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

func WithParserVerbose(verbose bool) func(*Parser) {
	return func(parser *Parser) {
		parser.verbose = verbose
	}
}

// WithGroundElevation sets elevation buildings stand on
func WithGroundElevation(groundElevation float64) func(*Parser) {
	return func(parser *Parser) {
		parser.groundElevation = groundElevation
	}
}

// WithOrigin fixes center of local projection. By default center of loaded data is used
func WithOrigin(origin GeoPoint) func(*Parser) {
	return func(parser *Parser) {
		parser.origin = &origin
	}
}

// WithRadius skips buildings which centers are farther than radius (kilometers) from origin. Zero means no limit
func WithRadius(radius float64) func(*Parser) {
	return func(parser *Parser) {
		parser.radius = radius
	}
}
