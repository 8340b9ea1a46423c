package flipdot

import (
	"fmt"
	"image"
	"sort"
	"strings"
)

// Address of a sign on the bus.
type Address uint8

// SignType identifies a sign model, which determines its pixel geometry.
type SignType uint8

// Supported sign types.
const (
	Max3000Front112x16 SignType = iota + 1
	Max3000Front98x16
	Max3000Side90x7
	Max3000Rear30x10
	Max3000Rear23x10
	Max3000Dash30x10
	HorizonFront160x16
	HorizonFront140x16
	HorizonSide90x16
	HorizonRear48x16
	HorizonDash40x12
)

type signInfo struct {
	name   string
	width  int
	height int
}

var signTypes = map[SignType]signInfo{
	Max3000Front112x16: {"max3000-front-112x16", 112, 16},
	Max3000Front98x16:  {"max3000-front-98x16", 98, 16},
	Max3000Side90x7:    {"max3000-side-90x7", 90, 7},
	Max3000Rear30x10:   {"max3000-rear-30x10", 30, 10},
	Max3000Rear23x10:   {"max3000-rear-23x10", 23, 10},
	Max3000Dash30x10:   {"max3000-dash-30x10", 30, 10},
	HorizonFront160x16: {"horizon-front-160x16", 160, 16},
	HorizonFront140x16: {"horizon-front-140x16", 140, 16},
	HorizonSide90x16:   {"horizon-side-90x16", 90, 16},
	HorizonRear48x16:   {"horizon-rear-48x16", 48, 16},
	HorizonDash40x12:   {"horizon-dash-40x12", 40, 12},
}

// Size returns the pixel dimensions of the sign, ok is false for unknown types.
func (t SignType) Size() (size image.Point, ok bool) {
	info, ok := signTypes[t]
	if !ok {
		return image.Point{}, false
	}
	return image.Pt(info.width, info.height), true
}

func (t SignType) String() string {
	if info, ok := signTypes[t]; ok {
		return info.name
	}
	return fmt.Sprintf("SignType(%d)", uint8(t))
}

// ParseSignType parses the sign type name as returned by [SignType.String], ignoring case.
func ParseSignType(name string) (SignType, error) {
	for t, info := range signTypes {
		if strings.EqualFold(info.name, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnsupportedSign, name)
}

// SignTypes returns all supported sign types.
func SignTypes() []SignType {
	types := make([]SignType, 0, len(signTypes))
	for t := range signTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
