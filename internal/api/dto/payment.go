package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/subcycle/subcycle/internal/domain/payment"
	"github.com/subcycle/subcycle/internal/types"
)

type ProcessPaymentRequest struct {
	InvoiceID     string              `json:"invoice_id" validate:"required"`
	PaymentMethod types.PaymentMethod `json:"payment_method" validate:"required"`
}

func (r *ProcessPaymentRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return err
	}
	return r.PaymentMethod.Validate()
}

type PaymentResponse struct {
	*payment.Payment
}
