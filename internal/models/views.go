package models

// Composite read views. Each view joins a root entity to its full relationship
// chain; a row whose chain cannot be resolved never appears in a view (the
// queries that build these use inner joins, and referential integrity is
// enforced by the schema).

// UserWithProfile is a User together with its Client or Provider profile,
// depending on the user type. Exactly one of Client/Provider is set.
type UserWithProfile struct {
	User     User      `json:"user"`
	Client   *Client   `json:"client,omitempty"`
	Provider *Provider `json:"provider,omitempty"`
}

// WellWithClient is a Well with its owning Client and that client's User.
type WellWithClient struct {
	Well        Well       `json:"well"`
	StatusLabel string     `json:"status_label"`
	Client      Client     `json:"client"`
	ClientUser  User       `json:"client_user"`
}

// VisitWithDetails is a Visit expanded through the well, its client and that
// client's user, plus the performing Provider and its User.
type VisitWithDetails struct {
	Visit        Visit          `json:"visit"`
	StatusLabel  string         `json:"status_label"`
	Well         WellWithClient `json:"well"`
	Provider     Provider       `json:"provider"`
	ProviderUser User           `json:"provider_user"`
}

// VisitWithMaterials is a VisitWithDetails plus the material usage and water
// parameter records taken during the visit.
type VisitWithMaterials struct {
	VisitWithDetails
	Materials       []MaterialUsage  `json:"materials"`
	WaterParameters []WaterParameter `json:"water_parameters"`
	// FollowUp is the scheduled visit auto-created from this visit, nil when
	// none was generated.
	FollowUp *ScheduledVisit `json:"follow_up,omitempty"`
}

// InvoiceWithDetails is an Invoice with the billed Client, the Provider and
// the originating Visit fully expanded.
type InvoiceWithDetails struct {
	Invoice      Invoice          `json:"invoice"`
	StatusLabel  string           `json:"status_label"`
	Client       Client           `json:"client"`
	ClientUser   User             `json:"client_user"`
	Provider     Provider         `json:"provider"`
	ProviderUser User             `json:"provider_user"`
	Visit        VisitWithDetails `json:"visit"`
}

// ConsumptionRow is one aggregated material line of the consumption report,
// ordered by TotalKilograms descending.
type ConsumptionRow struct {
	MaterialType    MaterialType `json:"material_type"`
	TotalGrams      float64      `json:"total_grams"`
	TotalKilograms  float64      `json:"total_kilograms"`
	VisitCount      int          `json:"visit_count"`
	AveragePerVisit float64      `json:"average_per_visit"`
	DistinctDates   int          `json:"distinct_dates"`
}

// ConsumptionReport is the consumption aggregation over a period.
type ConsumptionReport struct {
	Period      string           `json:"period"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Consumption []ConsumptionRow `json:"consumption"`
}
