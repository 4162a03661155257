package services

import (
	"context"
	"strings"

	"github.com/ensuredit/masterdata/modules/masterdata/domain/aggregates/mmv"
)

// Make prefixes start at different seeds per product line so the two
// catalogs never collide inside the shared table.
const (
	makeSeedTwoWheeler  = 101
	makeSeedFourWheeler = 401
	modelSeed           = 101
	variantSeed         = 1

	maxMakeSegment    = 999
	maxModelSegment   = 999
	maxVariantSegment = 99
)

// maxMake caps each product line at its band boundary so max+1 never
// crosses into the other line's range.
func maxMake(productID int) int {
	if productID == mmv.ProductFourWheeler {
		return maxMakeSegment
	}
	return mmv.FourWheelerMakeFloor - 1
}

// CodeAllocator derives composite codes from the position of a
// make/model/variant triple among existing rows: each segment reuses
// the rank already assigned to its name within scope, or takes
// max+1. Codes are stable once assigned; re-deriving for an existing
// triple returns the stored segments.
type CodeAllocator struct {
	index mmv.CodeIndex
}

func NewCodeAllocator(index mmv.CodeIndex) *CodeAllocator {
	return &CodeAllocator{index: index}
}

func (a *CodeAllocator) Allocate(ctx context.Context, productID int, make, model, variant string) (mmv.Code, error) {
	make = strings.TrimSpace(make)
	model = strings.TrimSpace(model)
	variant = strings.TrimSpace(variant)

	makeSeg, err := a.makeSegment(ctx, productID, make)
	if err != nil {
		return "", err
	}
	modelSeg, err := a.modelSegment(ctx, productID, makeSeg, model)
	if err != nil {
		return "", err
	}
	variantSeg, err := a.variantSegment(ctx, productID, makeSeg, modelSeg, variant)
	if err != nil {
		return "", err
	}
	return mmv.CodeFromSegments(makeSeg, modelSeg, variantSeg), nil
}

func (a *CodeAllocator) makeSegment(ctx context.Context, productID int, make string) (int, error) {
	seg, found, err := a.index.MakeSegment(ctx, productID, make)
	if err != nil {
		return 0, err
	}
	if found {
		return seg, nil
	}
	max, found, err := a.index.MaxMakeSegment(ctx, productID)
	if err != nil {
		return 0, err
	}
	if !found {
		return makeSeed(productID), nil
	}
	if max >= maxMake(productID) {
		return 0, mmv.ErrCodeSpaceExhausted
	}
	return max + 1, nil
}

func (a *CodeAllocator) modelSegment(ctx context.Context, productID, makeSeg int, model string) (int, error) {
	seg, found, err := a.index.ModelSegment(ctx, productID, makeSeg, model)
	if err != nil {
		return 0, err
	}
	if found {
		return seg, nil
	}
	max, found, err := a.index.MaxModelSegment(ctx, productID, makeSeg)
	if err != nil {
		return 0, err
	}
	if !found {
		return modelSeed, nil
	}
	if max >= maxModelSegment {
		return 0, mmv.ErrCodeSpaceExhausted
	}
	return max + 1, nil
}

func (a *CodeAllocator) variantSegment(ctx context.Context, productID, makeSeg, modelSeg int, variant string) (int, error) {
	seg, found, err := a.index.VariantSegment(ctx, productID, makeSeg, modelSeg, variant)
	if err != nil {
		return 0, err
	}
	if found {
		return seg, nil
	}
	max, found, err := a.index.MaxVariantSegment(ctx, productID, makeSeg, modelSeg)
	if err != nil {
		return 0, err
	}
	if !found {
		return variantSeed, nil
	}
	if max >= maxVariantSegment {
		return 0, mmv.ErrCodeSpaceExhausted
	}
	return max + 1, nil
}

func makeSeed(productID int) int {
	if productID == mmv.ProductFourWheeler {
		return makeSeedFourWheeler
	}
	return makeSeedTwoWheeler
}
