package osmnav

// HighwayType is 'highway' value of OSM way which car can drive along
type HighwayType uint8

const (
	HIGHWAY_UNKNOWN = HighwayType(iota)
	HIGHWAY_MOTORWAY
	HIGHWAY_MOTORWAY_LINK
	HIGHWAY_TRUNK
	HIGHWAY_TRUNK_LINK
	HIGHWAY_PRIMARY
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_SECONDARY
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_TERTIARY
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_UNCLASSIFIED
	HIGHWAY_RESIDENTIAL
	HIGHWAY_LIVING_STREET
	HIGHWAY_SERVICE
)

var highwayNames = [...]string{
	"unknown",
	"motorway", "motorway_link",
	"trunk", "trunk_link",
	"primary", "primary_link",
	"secondary", "secondary_link",
	"tertiary", "tertiary_link",
	"unclassified", "residential", "living_street", "service",
}

func (h HighwayType) String() string {
	if int(h) >= len(highwayNames) {
		return highwayNames[HIGHWAY_UNKNOWN]
	}
	return highwayNames[h]
}

// ParseHighwayType returns HIGHWAY_UNKNOWN for values car can't use (footway, steps, ...) and for misspelled ones
func ParseHighwayType(str string) HighwayType {
	for i := 1; i < len(highwayNames); i++ {
		if highwayNames[i] == str {
			return HighwayType(i)
		}
	}
	return HIGHWAY_UNKNOWN
}

// DefaultHighwayTags is set of 'highway' values which are routable by car in most of extracts
var DefaultHighwayTags = []string{
	HIGHWAY_RESIDENTIAL.String(),
	HIGHWAY_MOTORWAY.String(),
	HIGHWAY_TRUNK.String(),
	HIGHWAY_PRIMARY.String(),
	HIGHWAY_SECONDARY.String(),
	HIGHWAY_TERTIARY.String(),
	HIGHWAY_UNCLASSIFIED.String(),
	HIGHWAY_TRUNK_LINK.String(),
}
