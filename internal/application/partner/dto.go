package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/partner"
)

// CreateSupplierRequest represents the request to create a supplier
type CreateSupplierRequest struct {
	Code        string `json:"code" binding:"required,max=50"`
	Name        string `json:"name" binding:"required,max=200"`
	ContactName string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=50"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdateSupplierRequest represents the request to update a supplier
type UpdateSupplierRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	ContactName string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=50"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
}

// CreateCustomerRequest represents the request to create a customer
type CreateCustomerRequest struct {
	Code            string `json:"code" binding:"required,max=50"`
	Name            string `json:"name" binding:"required,max=200"`
	ContactName     string `json:"contact_name" binding:"omitempty,max=100"`
	Phone           string `json:"phone" binding:"omitempty,max=50"`
	Email           string `json:"email" binding:"omitempty,email"`
	ShippingAddress string `json:"shipping_address"`
	Notes           string `json:"notes"`
}

// UpdateCustomerRequest represents the request to update a customer
type UpdateCustomerRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	ContactName     string `json:"contact_name" binding:"omitempty,max=100"`
	Phone           string `json:"phone" binding:"omitempty,max=50"`
	Email           string `json:"email" binding:"omitempty,email"`
	ShippingAddress string `json:"shipping_address"`
}

// ChangeStatusRequest represents the request to change a partner's status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSupplierResponse creates a SupplierResponse from a domain supplier
func NewSupplierResponse(supplier *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:          supplier.ID,
		Code:        supplier.Code,
		Name:        supplier.Name,
		Status:      string(supplier.Status),
		ContactName: supplier.ContactName,
		Phone:       supplier.Phone,
		Email:       supplier.Email,
		Address:     supplier.Address,
		Notes:       supplier.Notes,
		CreatedAt:   supplier.CreatedAt,
		UpdatedAt:   supplier.UpdatedAt,
	}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	ContactName     string    `json:"contact_name,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	ShippingAddress string    `json:"shipping_address,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewCustomerResponse creates a CustomerResponse from a domain customer
func NewCustomerResponse(customer *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:              customer.ID,
		Code:            customer.Code,
		Name:            customer.Name,
		Status:          string(customer.Status),
		ContactName:     customer.ContactName,
		Phone:           customer.Phone,
		Email:           customer.Email,
		ShippingAddress: customer.ShippingAddress,
		Notes:           customer.Notes,
		CreatedAt:       customer.CreatedAt,
		UpdatedAt:       customer.UpdatedAt,
	}
}
