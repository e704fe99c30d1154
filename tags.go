package osm2noise

var (
	// Values of `building` tag for constructions without walls: sound goes through them
	negligibleBuildingTags = map[string]struct{}{
		"no":           {},
		"roof":         {},
		"carport":      {},
		"canopy":       {},
		"construction": {},
		"ruins":        {},
		"bridge":       {},
		"demolished":   {},
		"proposed":     {},
		"destroyed":    {},
	}
)
