package models

import "github.com/google/uuid"

// DTOs for API requests and responses. Dates travel as "2006-01-02" strings
// and are parsed at the handler/service boundary.

type RegisterRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	UserType UserType `json:"user_type" binding:"required"`

	// Profile fields; address/phone for clients, specialties/phone for providers.
	Address     string   `json:"address"`
	Phone       string   `json:"phone"`
	Specialties []string `json:"specialties"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  UserWithProfile `json:"user"`
}

type CreateWellRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	Name     string    `json:"name" binding:"required"`
	Type     string    `json:"type" binding:"required"`
	Location string    `json:"location" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateVisitRequest carries the non-file fields of the multipart visit form.
// Materials and water parameters arrive as JSON strings alongside the files.
type CreateVisitRequest struct {
	// ID may be pre-assigned so uploaded files land under the visit's
	// directory before the record exists. Zero means generate one.
	ID            uuid.UUID
	WellID        uuid.UUID
	ProviderID    uuid.UUID
	VisitDate     string
	ServiceType   string
	VisitType     VisitType
	NextVisitDate string
	Observations  string
	Photos        []string
	Documents     []string
}

// VisitMaterialInput is one submitted material line. Lines with a quantity of
// zero or less are skipped, not rejected.
type VisitMaterialInput struct {
	MaterialType  MaterialType `json:"material_type"`
	QuantityGrams string       `json:"quantity_grams"`
	Notes         string       `json:"notes"`
}

type VisitWaterParameterInput struct {
	PH            *float64 `json:"ph"`
	ChlorineLevel *float64 `json:"chlorine_level"`
	Turbidity     *float64 `json:"turbidity"`
	Notes         string   `json:"notes"`
}

type CreateScheduledVisitRequest struct {
	WellID        uuid.UUID `json:"well_id" binding:"required"`
	ProviderID    uuid.UUID `json:"provider_id" binding:"required"`
	ScheduledDate string    `json:"scheduled_date" binding:"required"`
	ServiceType   string    `json:"service_type" binding:"required"`
	Notes         string    `json:"notes"`
}

type CreateInvoiceRequest struct {
	VisitID       uuid.UUID     `json:"visit_id" binding:"required"`
	Description   string        `json:"description" binding:"required"`
	ServiceValue  string        `json:"service_value"`
	MaterialCosts string        `json:"material_costs"`
	IsFree        bool          `json:"is_free"`
	DueDate       string        `json:"due_date" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Notes         string        `json:"notes"`
}

type PayInvoiceRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
}
