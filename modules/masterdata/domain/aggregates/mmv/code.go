package mmv

import (
	"fmt"
	"regexp"
	"strconv"
)

// Code is the composite business key of an MMV row: three digits of
// make rank, three of model rank within the make, two of variant rank
// within the model, concatenated fixed-width.
type Code string

var codePattern = regexp.MustCompile(`^\d{8}$`)

func (c Code) Valid() bool { return codePattern.MatchString(string(c)) }

func (c Code) String() string { return string(c) }

func (c Code) MakeSegment() int    { return c.segment(0, 3) }
func (c Code) ModelSegment() int   { return c.segment(3, 6) }
func (c Code) VariantSegment() int { return c.segment(6, 8) }

func (c Code) segment(from, to int) int {
	if !c.Valid() {
		return 0
	}
	n, _ := strconv.Atoi(string(c)[from:to])
	return n
}

// CodeFromSegments assembles a composite code from its three ranks.
func CodeFromSegments(makeSeg, modelSeg, variantSeg int) Code {
	return Code(fmt.Sprintf("%03d%03d%02d", makeSeg, modelSeg, variantSeg))
}

// FourWheelerMakeFloor splits the shared code space between the two
// product lines: make ranks below it are two-wheeler, ranks at or
// above it four-wheeler.
const FourWheelerMakeFloor = 400

// InProductScope reports whether the code's make rank falls inside the
// product line's band. Malformed codes belong to no band.
func (c Code) InProductScope(productID int) bool {
	if !c.Valid() {
		return false
	}
	if productID == ProductFourWheeler {
		return c.MakeSegment() >= FourWheelerMakeFloor
	}
	return c.MakeSegment() < FourWheelerMakeFloor
}
