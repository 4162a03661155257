package rto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ensuredit/masterdata/pkg/constants"
	"github.com/ensuredit/masterdata/pkg/serrors"
)

type CreateDTO struct {
	ID            string `json:"id" validate:"required,numeric"`
	RTOCode       string `json:"rto_code" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	SearchString  string `json:"search_string"`
	DisplayString string `json:"display_string"`
}

func (d *CreateDTO) Normalize() {
	d.ID = strings.TrimSpace(d.ID)
	d.RTOCode = strings.TrimSpace(d.RTOCode)
	d.City = strings.TrimSpace(d.City)
	d.State = strings.TrimSpace(d.State)
	d.SearchString = strings.TrimSpace(d.SearchString)
	d.DisplayString = strings.TrimSpace(d.DisplayString)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity() RTO {
	return New(d.ID, d.RTOCode, d.City, d.State, d.SearchString, d.DisplayString)
}

type UpdateDTO struct {
	RTOCode       string `json:"rto_code" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	SearchString  string `json:"search_string"`
	DisplayString string `json:"display_string"`
}

func (d *UpdateDTO) Normalize() {
	d.RTOCode = strings.TrimSpace(d.RTOCode)
	d.City = strings.TrimSpace(d.City)
	d.State = strings.TrimSpace(d.State)
	d.SearchString = strings.TrimSpace(d.SearchString)
	d.DisplayString = strings.TrimSpace(d.DisplayString)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)), false
}

func (d *UpdateDTO) Apply(id string) RTO {
	return New(id, d.RTOCode, d.City, d.State, d.SearchString, d.DisplayString)
}
