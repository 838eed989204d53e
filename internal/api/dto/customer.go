package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/types"
)

type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (r *CreateCustomerRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *CreateCustomerRequest) ToCustomer() *customer.Customer {
	return &customer.Customer{
		ID:    types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:  r.Name,
		Email: r.Email,
	}
}

type AssignSubscriptionRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

func (r *AssignSubscriptionRequest) Validate() error {
	return validator.New().Struct(r)
}

type CustomerResponse struct {
	*customer.Customer
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse struct {
	Items []*CustomerResponse `json:"items"`
	Total int                 `json:"total"`
}
