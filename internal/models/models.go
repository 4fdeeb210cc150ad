package models

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeClient   UserType = "client"
	UserTypeProvider UserType = "provider"
	UserTypeAdmin    UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeClient, UserTypeProvider, UserTypeAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	UserType     UserType  `json:"user_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Client struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Provider struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Specialties []string  `json:"specialties"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type WellStatus string

const (
	WellStatusActive      WellStatus = "active"
	WellStatusMaintenance WellStatus = "maintenance"
	WellStatusAttention   WellStatus = "attention"
	WellStatusInactive    WellStatus = "inactive"
	WellStatusProblem     WellStatus = "problem"
)

func (s WellStatus) Valid() bool {
	switch s {
	case WellStatusActive, WellStatusMaintenance, WellStatusAttention, WellStatusInactive, WellStatusProblem:
		return true
	}
	return false
}

var wellStatusLabels = map[WellStatus]string{
	WellStatusActive:      "Ativo",
	WellStatusMaintenance: "Em manutenção",
	WellStatusAttention:   "Requer atenção",
	WellStatusInactive:    "Inativo",
	WellStatusProblem:     "Com problema",
}

// Label returns the display label for the status. Unrecognized values fall
// back to the active label instead of failing at render time.
func (s WellStatus) Label() string {
	if label, ok := wellStatusLabels[s]; ok {
		return label
	}
	return wellStatusLabels[WellStatusActive]
}

type Well struct {
	ID        uuid.UUID  `json:"id"`
	ClientID  uuid.UUID  `json:"client_id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Location  string     `json:"location"`
	Status    WellStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type VisitType string

const (
	VisitTypeUnique   VisitType = "unique"
	VisitTypePeriodic VisitType = "periodic"
)

func (t VisitType) Valid() bool {
	return t == VisitTypeUnique || t == VisitTypePeriodic
}

type VisitStatus string

const (
	VisitStatusPending    VisitStatus = "pending"
	VisitStatusInProgress VisitStatus = "in_progress"
	VisitStatusCompleted  VisitStatus = "completed"
	VisitStatusCancelled  VisitStatus = "cancelled"
)

func (s VisitStatus) Valid() bool {
	switch s {
	case VisitStatusPending, VisitStatusInProgress, VisitStatusCompleted, VisitStatusCancelled:
		return true
	}
	return false
}

var visitStatusLabels = map[VisitStatus]string{
	VisitStatusPending:    "Pendente",
	VisitStatusInProgress: "Em andamento",
	VisitStatusCompleted:  "Concluída",
	VisitStatusCancelled:  "Cancelada",
}

func (s VisitStatus) Label() string {
	if label, ok := visitStatusLabels[s]; ok {
		return label
	}
	return visitStatusLabels[VisitStatusPending]
}

// CanTransitionTo reports whether a visit may move from s to target.
// Completed and cancelled are terminal; cancellation is allowed from any
// non-terminal state.
func (s VisitStatus) CanTransitionTo(target VisitStatus) bool {
	switch s {
	case VisitStatusPending:
		return target == VisitStatusInProgress || target == VisitStatusCompleted || target == VisitStatusCancelled
	case VisitStatusInProgress:
		return target == VisitStatusCompleted || target == VisitStatusCancelled
	}
	return false
}

type Visit struct {
	ID            uuid.UUID   `json:"id"`
	WellID        uuid.UUID   `json:"well_id"`
	ProviderID    uuid.UUID   `json:"provider_id"`
	VisitDate     time.Time   `json:"visit_date"`
	ServiceType   string      `json:"service_type"`
	VisitType     VisitType   `json:"visit_type"`
	NextVisitDate *time.Time  `json:"next_visit_date,omitempty"`
	Observations  string      `json:"observations"`
	Status        VisitStatus `json:"status"`
	Photos        []string    `json:"photos"`
	Documents     []string    `json:"documents"`
	CreatedAt     time.Time   `json:"created_at"`
}

type ScheduledVisitStatus string

const (
	ScheduledVisitStatusScheduled ScheduledVisitStatus = "scheduled"
	ScheduledVisitStatusConfirmed ScheduledVisitStatus = "confirmed"
	ScheduledVisitStatusCompleted ScheduledVisitStatus = "completed"
	ScheduledVisitStatusCancelled ScheduledVisitStatus = "cancelled"
)

func (s ScheduledVisitStatus) Valid() bool {
	switch s {
	case ScheduledVisitStatusScheduled, ScheduledVisitStatusConfirmed, ScheduledVisitStatusCompleted, ScheduledVisitStatusCancelled:
		return true
	}
	return false
}

var scheduledVisitStatusLabels = map[ScheduledVisitStatus]string{
	ScheduledVisitStatusScheduled: "Agendada",
	ScheduledVisitStatusConfirmed: "Confirmada",
	ScheduledVisitStatusCompleted: "Realizada",
	ScheduledVisitStatusCancelled: "Cancelada",
}

func (s ScheduledVisitStatus) Label() string {
	if label, ok := scheduledVisitStatusLabels[s]; ok {
		return label
	}
	return scheduledVisitStatusLabels[ScheduledVisitStatusScheduled]
}

func (s ScheduledVisitStatus) CanTransitionTo(target ScheduledVisitStatus) bool {
	switch s {
	case ScheduledVisitStatusScheduled:
		return target == ScheduledVisitStatusConfirmed || target == ScheduledVisitStatusCompleted || target == ScheduledVisitStatusCancelled
	case ScheduledVisitStatusConfirmed:
		return target == ScheduledVisitStatusCompleted || target == ScheduledVisitStatusCancelled
	}
	return false
}

type ScheduledVisit struct {
	ID                 uuid.UUID            `json:"id"`
	WellID             uuid.UUID            `json:"well_id"`
	ProviderID         uuid.UUID            `json:"provider_id"`
	ScheduledDate      time.Time            `json:"scheduled_date"`
	ServiceType        string               `json:"service_type"`
	Status             ScheduledVisitStatus `json:"status"`
	Notes              string               `json:"notes"`
	CreatedFromVisitID *uuid.UUID           `json:"created_from_visit_id,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

var invoiceStatusLabels = map[InvoiceStatus]string{
	InvoiceStatusPending:   "Pendente",
	InvoiceStatusSent:      "Enviada",
	InvoiceStatusPaid:      "Paga",
	InvoiceStatusOverdue:   "Vencida",
	InvoiceStatusCancelled: "Cancelada",
}

func (s InvoiceStatus) Label() string {
	if label, ok := invoiceStatusLabels[s]; ok {
		return label
	}
	return invoiceStatusLabels[InvoiceStatusPending]
}

// CanTransitionTo reports whether an invoice may move from s to target.
// Paid and cancelled are terminal.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusPending:
		return target == InvoiceStatusSent || target == InvoiceStatusOverdue || target == InvoiceStatusCancelled
	case InvoiceStatusSent:
		return target == InvoiceStatusPaid || target == InvoiceStatusOverdue || target == InvoiceStatusCancelled
	case InvoiceStatusOverdue:
		return target == InvoiceStatusPaid || target == InvoiceStatusCancelled
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodBoleto PaymentMethod = "boleto"
	PaymentMethodPix    PaymentMethod = "pix"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCash   PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBoleto, PaymentMethodPix, PaymentMethodCard, PaymentMethodCash:
		return true
	}
	return false
}

// Invoice monetary amounts are decimal strings with two places ("150.00").
// They are stored as NUMERIC and never pass through float64.
type Invoice struct {
	ID            uuid.UUID     `json:"id"`
	VisitID       uuid.UUID     `json:"visit_id"`
	ClientID      uuid.UUID     `json:"client_id"`
	ProviderID    uuid.UUID     `json:"provider_id"`
	InvoiceNumber string        `json:"invoice_number"`
	Description   string        `json:"description"`
	ServiceValue  string        `json:"service_value"`
	MaterialCosts string        `json:"material_costs"`
	TotalAmount   string        `json:"total_amount"`
	IsFree        bool          `json:"is_free"`
	Status        InvoiceStatus `json:"status"`
	DueDate       time.Time     `json:"due_date"`
	SentAt        *time.Time    `json:"sent_at,omitempty"`
	PaidDate      *time.Time    `json:"paid_date,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	PaymentURL    string        `json:"payment_url,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type MaterialType string

const (
	MaterialChlorine           MaterialType = "chlorine"
	MaterialSodiumHypochlorite MaterialType = "sodium_hypochlorite"
	MaterialAluminumSulfate    MaterialType = "aluminum_sulfate"
	MaterialLime               MaterialType = "lime"
	MaterialActivatedCarbon    MaterialType = "activated_carbon"
	MaterialAntiscalant        MaterialType = "antiscalant"
	MaterialPolymer            MaterialType = "polymer"
	MaterialOther              MaterialType = "other"
)

// MaterialCatalog is the closed set of materials a visit may consume.
var MaterialCatalog = []MaterialType{
	MaterialChlorine,
	MaterialSodiumHypochlorite,
	MaterialAluminumSulfate,
	MaterialLime,
	MaterialActivatedCarbon,
	MaterialAntiscalant,
	MaterialPolymer,
	MaterialOther,
}

func (m MaterialType) Valid() bool {
	for _, known := range MaterialCatalog {
		if m == known {
			return true
		}
	}
	return false
}

// QuantityGrams is kept as a decimal string in the record to avoid
// floating-point drift in persisted data.
type MaterialUsage struct {
	ID            uuid.UUID    `json:"id"`
	VisitID       uuid.UUID    `json:"visit_id"`
	MaterialType  MaterialType `json:"material_type"`
	QuantityGrams string       `json:"quantity_grams"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// WaterParameter holds the water readings taken during a visit.
type WaterParameter struct {
	ID            uuid.UUID `json:"id"`
	VisitID       uuid.UUID `json:"visit_id"`
	PH            *float64  `json:"ph,omitempty"`
	ChlorineLevel *float64  `json:"chlorine_level,omitempty"`
	Turbidity     *float64  `json:"turbidity,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
