package osm2noise

import (
	"log"
)

// WithVerbose enables logging of tree statistics and every branch decision
func WithVerbose(verbose bool) func(*PathTreeBuilder) {
	return func(builder *PathTreeBuilder) {
		builder.verbose = verbose
	}
}

// WithDebug marks source nodes as debug ones: decisions for their subtrees are logged
func WithDebug(debug bool) func(*PathTreeBuilder) {
	return func(builder *PathTreeBuilder) {
		builder.debug = debug
	}
}

// WithLogger replaces default logger
func WithLogger(logger *log.Logger) func(*PathTreeBuilder) {
	return func(builder *PathTreeBuilder) {
		builder.logger = logger
	}
}
