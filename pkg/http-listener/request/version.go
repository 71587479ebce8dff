package request

import "strconv"

// ProtocolVersion is the HTTP version announced on the request line.
type ProtocolVersion struct {
	Major int
	Minor int
}

var (
	// HTTP10 is HTTP/1.0.
	HTTP10 = ProtocolVersion{Major: 1, Minor: 0}
	// HTTP11 is HTTP/1.1.
	HTTP11 = ProtocolVersion{Major: 1, Minor: 1}
)

// Compare returns -1, 0 or 1 when v is lower than, equal to or greater than o.
func (v ProtocolVersion) Compare(o ProtocolVersion) int {
	switch {
	case v.Major < o.Major:
		return -1
	case v.Major > o.Major:
		return 1
	case v.Minor < o.Minor:
		return -1
	case v.Minor > o.Minor:
		return 1
	default:
		return 0
	}
}

func (v ProtocolVersion) GreaterThan(o ProtocolVersion) bool { return v.Compare(o) > 0 }

func (v ProtocolVersion) LessThan(o ProtocolVersion) bool { return v.Compare(o) < 0 }

func (v ProtocolVersion) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}
