package core

import "time"

// Project is the root record a wizard session operates on.
type Project struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// SitePlanRecord is the site-plan step's backing record.
type SitePlanRecord struct {
	ID         string    `json:"id,omitempty"`
	ProjectID  string    `json:"project_id"`
	PlanNumber string    `json:"plan_number"`
	PlotNumber string    `json:"plot_number"`
	District   string    `json:"district,omitempty"`
	AreaSqm    float64   `json:"area_sqm"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// LicenseRecord is the building-license step's backing record.
type LicenseRecord struct {
	ID            string    `json:"id,omitempty"`
	ProjectID     string    `json:"project_id"`
	LicenseNumber string    `json:"license_number"`
	IssuedAt      time.Time `json:"issued_at,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitempty"`
	Authority     string    `json:"authority,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// AwardingRecord is the bank awarding step's backing record. It only
// applies to the housing-loan-program path.
type AwardingRecord struct {
	ID          string    `json:"id,omitempty"`
	ProjectID   string    `json:"project_id"`
	BankName    string    `json:"bank_name"`
	AwardNumber string    `json:"award_number"`
	AwardedAt   time.Time `json:"awarded_at,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Snapshot is one consistent read of a project and its dependent
// records. Any slot other than Project may be nil, meaning the record
// has not been created yet (or its read failed; the two are not
// distinguished).
type Snapshot struct {
	Project  *Project        `json:"project"`
	SitePlan *SitePlanRecord `json:"siteplan"`
	License  *LicenseRecord  `json:"license"`
	Contract *ContractRecord `json:"contract"`
	Awarding *AwardingRecord `json:"awarding"`
}
