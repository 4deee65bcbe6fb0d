package deps

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajyadav1814/repoguard/internal/models"
)

type fakeLookup struct {
	mu      sync.Mutex
	calls   int
	ids     map[string][]string
	failFor map[string]bool
}

func (f *fakeLookup) Lookup(_ context.Context, _, pkg, _ string) ([]string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.failFor[pkg] {
		return nil, errors.New("lookup unavailable")
	}
	return f.ids[pkg], nil
}

func TestEnrich_AppendsNewCVEsAndEscalates(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	findings := []models.Finding{{
		Severity: models.SeverityMedium,
		Category: models.CategoryDependency,
		CVEIDs:   []string{"CVE-2022-24999"},
		Score:    5.5,
	}}
	deps := []Dependency{{Ecosystem: EcosystemNPM, Name: "express", Version: "4.17.1"}}
	client := &fakeLookup{ids: map[string][]string{
		"express": {"CVE-2022-24999", "CVE-2024-29041"},
	}}

	a.Enrich(context.Background(), client, findings, deps, 4)

	require.Equal(t, []string{"CVE-2022-24999", "CVE-2024-29041"}, findings[0].CVEIDs)
	assert.Equal(t, models.SeverityHigh, findings[0].Severity)
	assert.InDelta(t, 7.0, findings[0].Score, 0.001)
}

func TestEnrich_NoNewCVEsLeavesSeverity(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	findings := []models.Finding{{
		Severity: models.SeverityMedium,
		CVEIDs:   []string{"CVE-2023-32681"},
		Score:    5.5,
	}}
	deps := []Dependency{{Ecosystem: EcosystemPyPI, Name: "requests", Version: "2.25.0"}}
	client := &fakeLookup{ids: map[string][]string{
		"requests": {"CVE-2023-32681"},
	}}

	a.Enrich(context.Background(), client, findings, deps, 2)

	assert.Equal(t, models.SeverityMedium, findings[0].Severity)
	assert.InDelta(t, 5.5, findings[0].Score, 0.001)
}

func TestEnrich_FailedLookupLeavesFindingUnchanged(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	findings := []models.Finding{{
		Severity: models.SeverityHigh,
		CVEIDs:   []string{"CVE-2021-23337"},
		Score:    7.2,
	}}
	deps := []Dependency{{Ecosystem: EcosystemNPM, Name: "lodash", Version: "4.17.20"}}
	client := &fakeLookup{failFor: map[string]bool{"lodash": true}}

	a.Enrich(context.Background(), client, findings, deps, 1)

	assert.Equal(t, []string{"CVE-2021-23337"}, findings[0].CVEIDs)
	assert.Equal(t, models.SeverityHigh, findings[0].Severity)
}

func TestEnrich_SkipsMisalignedInput(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	findings := []models.Finding{{Severity: models.SeverityLow}}
	client := &fakeLookup{}

	a.Enrich(context.Background(), client, findings, nil, 4)

	assert.Zero(t, client.calls)
	assert.Equal(t, models.SeverityLow, findings[0].Severity)
}

func TestEnrich_CriticalNeverEscalatesFurther(t *testing.T) {
	a := NewAnalyzer(zerolog.Nop())
	findings := []models.Finding{{
		Severity: models.SeverityCritical,
		CVEIDs:   []string{"CVE-2021-44906"},
		Score:    9.5,
	}}
	deps := []Dependency{{Ecosystem: EcosystemNPM, Name: "minimist", Version: "1.2.5"}}
	client := &fakeLookup{ids: map[string][]string{
		"minimist": {"CVE-2021-44906", "CVE-2020-7598"},
	}}

	a.Enrich(context.Background(), client, findings, deps, 2)

	assert.Equal(t, models.SeverityCritical, findings[0].Severity)
	assert.InDelta(t, 9.5, findings[0].Score, 0.001)
	assert.Len(t, findings[0].CVEIDs, 2)
}
