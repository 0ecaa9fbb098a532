package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/injaz-app/injaz/pkg/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestProject(t *testing.T, s *SQLiteStore) *core.Project {
	t.Helper()
	p := &core.Project{
		Name: "Villa 12",
		Classification: core.Classification{
			ProjectType:   core.ProjectTypeVilla,
			VillaCategory: core.VillaCategoryResidential,
			ContractType:  core.ContractTypeNew,
		},
	}
	require.NoError(t, s.CreateProject(context.Background(), p))
	require.NotEmpty(t, p.ID)
	return p
}

func TestProjectRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := newTestProject(t, s)

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, core.ProjectTypeVilla, got.Classification.ProjectType)
	assert.True(t, got.Classification.Complete())
}

func TestGetProject_Missing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetProject(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got, "missing project is absence, not error")
}

func TestPatchClassification(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := newTestProject(t, s)

	err := s.PatchClassification(ctx, p.ID, core.Classification{
		ProjectType:  core.ProjectTypeCommercial,
		ContractType: core.ContractTypeContinue,
		InternalCode: "C-778",
	})
	require.NoError(t, err)

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, core.ProjectTypeCommercial, got.Classification.ProjectType)
	assert.Empty(t, got.Classification.VillaCategory)
	assert.Equal(t, "C-778", got.Classification.InternalCode)
	assert.False(t, got.Classification.SitePlanFlowEligible())
}

func TestPatchClassification_MissingProject(t *testing.T) {
	s := newTestStore(t)
	err := s.PatchClassification(context.Background(), "ghost", core.Classification{})
	assert.Error(t, err)
}

func TestSaveContract_CreateThenPatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := newTestProject(t, s)

	rec := &core.ContractRecord{
		ProjectID:      p.ID,
		Classification: core.FundingHousingLoanProgram,
		GrossTotal:     1000000,
		GrossBank:      600000,
		OwnerFees:      core.ShareFees{HasFee: true, DesignPct: 3, SupervisionPct: 2},
	}
	require.NoError(t, s.SaveContract(ctx, rec))
	require.NotEmpty(t, rec.ID, "first save assigns the server id")
	assert.Equal(t, 400000.0, rec.GrossOwner, "owner share derived on save")

	firstID := rec.ID

	// Patch the same record: switch to private funding.
	rec.Classification = core.FundingPrivate
	rec.GrossOwner = 0
	require.NoError(t, s.SaveContract(ctx, rec))
	assert.Equal(t, firstID, rec.ID)

	recs, err := s.ListContracts(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1, "patching must not create a second record")
	got := recs[0]
	assert.Equal(t, core.FundingPrivate, got.Classification)
	assert.Equal(t, 0.0, got.GrossBank, "private funding zeroes the bank share")
	assert.Equal(t, 1000000.0, got.GrossOwner)
	assert.True(t, got.OwnerFees.HasFee)
	assert.Equal(t, 3.0, got.OwnerFees.DesignPct)
}

func TestSaveContract_RejectsDeviantOwnerValue(t *testing.T) {
	s := newTestStore(t)
	p := newTestProject(t, s)

	rec := &core.ContractRecord{
		ProjectID:      p.ID,
		Classification: core.FundingHousingLoanProgram,
		GrossTotal:     1000000,
		GrossBank:      600000,
		GrossOwner:     400100, // derived share is 400000
	}
	err := s.SaveContract(context.Background(), rec)
	assert.Error(t, err)

	recs, lerr := s.ListContracts(context.Background(), p.ID)
	require.NoError(t, lerr)
	assert.Empty(t, recs, "rejected save must not persist")
}

func TestDependentRecords_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := newTestProject(t, s)

	sp := &core.SitePlanRecord{ProjectID: p.ID, PlanNumber: "SP-100", PlotNumber: "42", AreaSqm: 375.5}
	require.NoError(t, s.SaveSitePlan(ctx, sp))

	lc := &core.LicenseRecord{ProjectID: p.ID, LicenseNumber: "L-9", Authority: "municipality"}
	require.NoError(t, s.SaveLicense(ctx, lc))

	aw := &core.AwardingRecord{ProjectID: p.ID, BankName: "SNB", AwardNumber: "A-1"}
	require.NoError(t, s.SaveAwarding(ctx, aw))

	plans, err := s.ListSitePlans(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 375.5, plans[0].AreaSqm)

	licenses, err := s.ListLicenses(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, licenses, 1)
	assert.True(t, licenses[0].IssuedAt.IsZero(), "absent timestamp stays zero")

	awards, err := s.ListAwardings(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, awards, 1)

	// Patch keeps the row count at one.
	sp.District = "Al Narjis"
	require.NoError(t, s.SaveSitePlan(ctx, sp))
	plans, err = s.ListSitePlans(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Al Narjis", plans[0].District)
}

func TestDeleteProject_CascadesDependents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := newTestProject(t, s)

	require.NoError(t, s.SaveSitePlan(ctx, &core.SitePlanRecord{ProjectID: p.ID, PlanNumber: "SP-1"}))
	require.NoError(t, s.DeleteProject(ctx, p.ID))

	plans, err := s.ListSitePlans(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestMigrationVersion(t *testing.T) {
	s := newTestStore(t)
	v, err := s.MigrationVersion()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, v, int64(1))
}
