package mmv

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ensuredit/masterdata/pkg/constants"
	"github.com/ensuredit/masterdata/pkg/serrors"
)

type CreateDTO struct {
	ProductID        int    `json:"product_id" validate:"required,oneof=1 2"`
	Make             string `json:"make" validate:"required"`
	Model            string `json:"model" validate:"required"`
	Variant          string `json:"variant" validate:"required"`
	FuelType         string `json:"fuel_type"`
	CC               int    `json:"cc" validate:"min=0"`
	BodyType         string `json:"body_type"`
	SeatingCapacity  int    `json:"seating_capacity" validate:"min=0"`
	CarryingCapacity int    `json:"carrying_capacity" validate:"min=0"`
}

func (d *CreateDTO) Normalize() {
	d.Make = strings.TrimSpace(d.Make)
	d.Model = strings.TrimSpace(d.Model)
	d.Variant = strings.TrimSpace(d.Variant)
	d.FuelType = strings.TrimSpace(d.FuelType)
	d.BodyType = strings.TrimSpace(d.BodyType)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity() MMV {
	return New(
		d.ProductID,
		d.Make, d.Model, d.Variant,
		d.FuelType, d.CC, d.BodyType,
		d.SeatingCapacity, d.CarryingCapacity,
	)
}

type UpdateDTO struct {
	FuelType         string `json:"fuel_type"`
	CC               int    `json:"cc" validate:"min=0"`
	BodyType         string `json:"body_type"`
	SeatingCapacity  int    `json:"seating_capacity" validate:"min=0"`
	CarryingCapacity int    `json:"carrying_capacity" validate:"min=0"`
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

// Apply merges updatable fields onto an existing row.
func (d *UpdateDTO) Apply(existing MMV) MMV {
	updated := New(
		existing.ProductID(),
		existing.Make(), existing.Model(), existing.Variant(),
		strings.TrimSpace(d.FuelType), d.CC, strings.TrimSpace(d.BodyType),
		d.SeatingCapacity, d.CarryingCapacity,
	)
	updated.id = existing.ID()
	updated.code = existing.Code()
	updated.mappings = existing.mappings
	return updated
}
