package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/subcycle/subcycle/internal/domain/invoice"
)

type GenerateInvoiceRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
}

func (r *GenerateInvoiceRequest) Validate() error {
	return validator.New().Struct(r)
}

type ChangePlanRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	NewPlanID  string `json:"new_plan_id" validate:"required"`
}

func (r *ChangePlanRequest) Validate() error {
	return validator.New().Struct(r)
}

type InvoiceResponse struct {
	*invoice.Invoice
}
