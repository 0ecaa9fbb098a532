package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/injaz-app/injaz/pkg/core"
)

// ListSitePlans returns the site-plan records of a project.
func (s *SQLiteStore) ListSitePlans(ctx context.Context, projectID string) ([]*core.SitePlanRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, plan_number, plot_number, district, area_sqm, created_at, updated_at
		FROM siteplans WHERE project_id = ? ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list siteplans: %w", err)
	}
	defer rows.Close()

	var out []*core.SitePlanRecord
	for rows.Next() {
		var r core.SitePlanRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.PlanNumber, &r.PlotNumber, &r.District, &r.AreaSqm, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = parseTime(updatedAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

// SaveSitePlan creates the record when it has no id yet, otherwise
// patches the existing row.
func (s *SQLiteStore) SaveSitePlan(ctx context.Context, rec *core.SitePlanRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = generateID()
		rec.CreatedAt = now
		rec.UpdatedAt = now
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO siteplans (id, project_id, plan_number, plot_number, district, area_sqm, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.ProjectID, rec.PlanNumber, rec.PlotNumber, rec.District, rec.AreaSqm,
			formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("failed to insert siteplan: %w", err)
		}
		return nil
	}

	rec.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `
		UPDATE siteplans
		SET plan_number = ?, plot_number = ?, district = ?, area_sqm = ?, updated_at = ?
		WHERE id = ?`,
		rec.PlanNumber, rec.PlotNumber, rec.District, rec.AreaSqm, formatTime(now), rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update siteplan: %w", err)
	}
	return nil
}

// ListLicenses returns the license records of a project.
func (s *SQLiteStore) ListLicenses(ctx context.Context, projectID string) ([]*core.LicenseRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, license_number, issued_at, expires_at, authority, created_at, updated_at
		FROM licenses WHERE project_id = ? ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	defer rows.Close()

	var out []*core.LicenseRecord
	for rows.Next() {
		var r core.LicenseRecord
		var issuedAt, expiresAt sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.LicenseNumber, &issuedAt, &expiresAt, &r.Authority, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.IssuedAt = parseTimeNull(issuedAt)
		r.ExpiresAt = parseTimeNull(expiresAt)
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = parseTime(updatedAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

// SaveLicense creates or patches a license record.
func (s *SQLiteStore) SaveLicense(ctx context.Context, rec *core.LicenseRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = generateID()
		rec.CreatedAt = now
		rec.UpdatedAt = now
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO licenses (id, project_id, license_number, issued_at, expires_at, authority, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.ProjectID, rec.LicenseNumber,
			formatTimePtr(rec.IssuedAt), formatTimePtr(rec.ExpiresAt), rec.Authority,
			formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("failed to insert license: %w", err)
		}
		return nil
	}

	rec.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `
		UPDATE licenses
		SET license_number = ?, issued_at = ?, expires_at = ?, authority = ?, updated_at = ?
		WHERE id = ?`,
		rec.LicenseNumber, formatTimePtr(rec.IssuedAt), formatTimePtr(rec.ExpiresAt), rec.Authority,
		formatTime(now), rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update license: %w", err)
	}
	return nil
}

// ListContracts returns the contract records of a project.
func (s *SQLiteStore) ListContracts(ctx context.Context, projectID string) ([]*core.ContractRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, classification, contract_kind, total_value, total_bank_value, total_owner_value,
		       bank_fees, owner_fees, created_at, updated_at
		FROM contracts WHERE project_id = ? ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var out []*core.ContractRecord
	for rows.Next() {
		var r core.ContractRecord
		var classification, bankFees, ownerFees, createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.ProjectID, &classification, &r.Type,
			&r.GrossTotal, &r.GrossBank, &r.GrossOwner,
			&bankFees, &ownerFees, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.Classification = core.FundingClassification(classification)
		// Fee configuration is stored as JSON; a corrupt blob degrades
		// to the zero value rather than failing the read.
		_ = json.Unmarshal([]byte(bankFees), &r.BankFees)
		_ = json.Unmarshal([]byte(ownerFees), &r.OwnerFees)
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = parseTime(updatedAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

// SaveContract creates the contract record on first save and patches the
// same row (identified by the server-assigned id) on later edits. The
// funding invariant is normalized before writing.
func (s *SQLiteStore) SaveContract(ctx context.Context, rec *core.ContractRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	rec.NormalizeFunding()

	bankFees, err := json.Marshal(rec.BankFees)
	if err != nil {
		return fmt.Errorf("failed to serialize bank fees: %w", err)
	}
	ownerFees, err := json.Marshal(rec.OwnerFees)
	if err != nil {
		return fmt.Errorf("failed to serialize owner fees: %w", err)
	}

	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = generateID()
		rec.CreatedAt = now
		rec.UpdatedAt = now
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO contracts (id, project_id, classification, contract_kind, total_value, total_bank_value,
			                       total_owner_value, bank_fees, owner_fees, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.ProjectID, string(rec.Classification), rec.Type,
			rec.GrossTotal, rec.GrossBank, rec.GrossOwner,
			string(bankFees), string(ownerFees), formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("failed to insert contract: %w", err)
		}
		return nil
	}

	rec.UpdatedAt = now
	_, err = s.db.ExecContext(ctx, `
		UPDATE contracts
		SET classification = ?, contract_kind = ?, total_value = ?, total_bank_value = ?, total_owner_value = ?,
		    bank_fees = ?, owner_fees = ?, updated_at = ?
		WHERE id = ?`,
		string(rec.Classification), rec.Type,
		rec.GrossTotal, rec.GrossBank, rec.GrossOwner,
		string(bankFees), string(ownerFees), formatTime(now), rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	return nil
}

// ListAwardings returns the awarding records of a project.
func (s *SQLiteStore) ListAwardings(ctx context.Context, projectID string) ([]*core.AwardingRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, bank_name, award_number, awarded_at, created_at, updated_at
		FROM awardings WHERE project_id = ? ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list awardings: %w", err)
	}
	defer rows.Close()

	var out []*core.AwardingRecord
	for rows.Next() {
		var r core.AwardingRecord
		var awardedAt sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.BankName, &r.AwardNumber, &awardedAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.AwardedAt = parseTimeNull(awardedAt)
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = parseTime(updatedAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

// SaveAwarding creates or patches an awarding record.
func (s *SQLiteStore) SaveAwarding(ctx context.Context, rec *core.AwardingRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = generateID()
		rec.CreatedAt = now
		rec.UpdatedAt = now
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO awardings (id, project_id, bank_name, award_number, awarded_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.ProjectID, rec.BankName, rec.AwardNumber,
			formatTimePtr(rec.AwardedAt), formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("failed to insert awarding: %w", err)
		}
		return nil
	}

	rec.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `
		UPDATE awardings
		SET bank_name = ?, award_number = ?, awarded_at = ?, updated_at = ?
		WHERE id = ?`,
		rec.BankName, rec.AwardNumber, formatTimePtr(rec.AwardedAt), formatTime(now), rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update awarding: %w", err)
	}
	return nil
}
