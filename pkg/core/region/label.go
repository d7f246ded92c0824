package region

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned by [ParseType] for unrecognized region types.
var ErrUnknownType = errors.New("unknown label region type")

// Type classifies a label region.
type Type int

const (
	// Header marks regions holding column or row labels.
	Header Type = iota
	// Data marks regions holding table values.
	Data
)

// String returns "header" or "data".
func (t Type) String() string {
	switch t {
	case Header:
		return "header"
	case Data:
		return "data"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// ParseType accepts "header"/"h" and "data"/"d", case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "header", "h":
		return Header, nil
	case "data", "d":
		return Data, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// MarshalJSON encodes the type by name.
func (t Type) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

// UnmarshalJSON decodes a type name accepted by ParseType.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// LabelRegion is a typed, identified rectangle of cells. IDs are unique
// within one sheet.
type LabelRegion struct {
	ID   int  `json:"id"`
	Type Type `json:"type"`
	BoundingBox
}

// NewLabelRegion builds a region from its bounds.
func NewLabelRegion(id int, t Type, top, left, bottom, right int) LabelRegion {
	return LabelRegion{ID: id, Type: t, BoundingBox: Box(top, left, bottom, right)}
}

// IsHeader reports whether the region is a header region.
func (r LabelRegion) IsHeader() bool { return r.Type == Header }

// IsData reports whether the region is a data region.
func (r LabelRegion) IsData() bool { return r.Type == Data }

// String formats the region as its type initial and id, e.g. "H3".
func (r LabelRegion) String() string {
	if r.Type == Header {
		return fmt.Sprintf("H%d", r.ID)
	}
	return fmt.Sprintf("D%d", r.ID)
}

// Boxes returns the bounding boxes of the given regions.
func Boxes(regions []LabelRegion) []BoundingBox {
	out := make([]BoundingBox, len(regions))
	for i, r := range regions {
		out[i] = r.BoundingBox
	}
	return out
}
