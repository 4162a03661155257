package pincode

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ensuredit/masterdata/pkg/constants"
	"github.com/ensuredit/masterdata/pkg/serrors"
)

type CreateDTO struct {
	Pincode  string `json:"pincode" validate:"required,len=6,numeric"`
	District string `json:"district" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
}

func (d *CreateDTO) Normalize() {
	d.Pincode = strings.TrimSpace(d.Pincode)
	d.District = strings.TrimSpace(d.District)
	d.City = strings.TrimSpace(d.City)
	d.State = strings.TrimSpace(d.State)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity() Pincode {
	return New(d.Pincode, d.District, d.City, d.State)
}

type UpdateDTO struct {
	District string `json:"district" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
}

func (d *UpdateDTO) Normalize() {
	d.District = strings.TrimSpace(d.District)
	d.City = strings.TrimSpace(d.City)
	d.State = strings.TrimSpace(d.State)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *UpdateDTO) Apply(code string) Pincode {
	return New(code, d.District, d.City, d.State)
}
