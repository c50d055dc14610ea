package osmnav

// OsmConfiguration allows to filter ways by certain tags from OSM data
type OsmConfiguration struct {
	EntityName string // 'highway' by default
	Tags       []string
	// DefaultSpeed is assigned to every synthesized edge (km/h)
	DefaultSpeed float64
}

// NewOsmConfiguration returns configuration for 'highway' entity with given allowed values
func NewOsmConfiguration(tags []string) *OsmConfiguration {
	if len(tags) == 0 {
		tags = DefaultHighwayTags
	}
	return &OsmConfiguration{
		EntityName:   "highway",
		Tags:         tags,
		DefaultSpeed: DefaultSpeed,
	}
}

// CheckTag checks if incoming tag is represented in configuration
func (cfg *OsmConfiguration) CheckTag(tag string) bool {
	for i := range cfg.Tags {
		if cfg.Tags[i] == tag {
			return true
		}
	}
	return false
}

// unknownTags returns allowed values which are not drivable highway types
func (cfg *OsmConfiguration) unknownTags() []string {
	unknown := []string{}
	for _, tag := range cfg.Tags {
		if ParseHighwayType(tag) == HIGHWAY_UNKNOWN {
			unknown = append(unknown, tag)
		}
	}
	return unknown
}
