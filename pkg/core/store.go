package core

import "context"

// Store is the persistence interface for projects and their dependent
// records. List reads return collections; the domain models exactly one
// dependent record per project, so callers take the first element as the
// canonical record.
//
// A missing record is reported as (nil, nil) or an empty list, not an
// error.
type Store interface {
	// Projects.
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	PatchClassification(ctx context.Context, projectID string, c Classification) error
	DeleteProject(ctx context.Context, id string) error

	// Dependent records. Save* creates when the record has no ID yet and
	// patches the existing row otherwise.
	ListSitePlans(ctx context.Context, projectID string) ([]*SitePlanRecord, error)
	SaveSitePlan(ctx context.Context, rec *SitePlanRecord) error

	ListLicenses(ctx context.Context, projectID string) ([]*LicenseRecord, error)
	SaveLicense(ctx context.Context, rec *LicenseRecord) error

	ListContracts(ctx context.Context, projectID string) ([]*ContractRecord, error)
	SaveContract(ctx context.Context, rec *ContractRecord) error

	ListAwardings(ctx context.Context, projectID string) ([]*AwardingRecord, error)
	SaveAwarding(ctx context.Context, rec *AwardingRecord) error

	Close() error
}
