// Package trend compares a completed scan against the most recent prior
// scan of the same repository and derives the security posture delta.
package trend

import (
	"time"

	"github.com/rajyadav1814/repoguard/internal/models"
)

// Compute derives the trend for the current scan from the prior scan
// records. Prior entries sharing the current scan id are excluded; when
// nothing remains, the result carries the first-scan marker. Deltas are
// signed and never clamped: a regression shows as a positive delta, an
// improvement as a negative one.
func Compute(current *models.ScanResult, priorScans []models.ScanResult) models.TrendResult {
	previous := mostRecent(current.ScanID, priorScans)
	if previous == nil {
		return models.TrendResult{FirstScan: true}
	}

	currentHist := models.SeverityHistogram(current.Findings)
	total := len(current.Findings) - len(previous.Findings)

	percent := 0.0
	if len(previous.Findings) > 0 {
		percent = float64(total) / float64(len(previous.Findings)) * 100
	}

	return models.TrendResult{
		PreviousScanID:    previous.ScanID,
		PreviousScanDate:  previous.Timestamp.Format(time.RFC3339),
		DaysSincePrevious: daysBetween(previous.Timestamp, current.Timestamp),
		Changes: models.TrendChanges{
			Critical: currentHist[models.SeverityCritical] - previous.SeverityCount(models.SeverityCritical),
			High:     currentHist[models.SeverityHigh] - previous.SeverityCount(models.SeverityHigh),
			Medium:   currentHist[models.SeverityMedium] - previous.SeverityCount(models.SeverityMedium),
			Low:      currentHist[models.SeverityLow] - previous.SeverityCount(models.SeverityLow),
			Total:    total,
			Percent:  percent,
		},
	}
}

// mostRecent selects the prior scan with the latest timestamp, skipping
// any record that shares the current scan id.
func mostRecent(currentScanID string, priorScans []models.ScanResult) *models.ScanResult {
	var previous *models.ScanResult
	for i := range priorScans {
		p := &priorScans[i]
		if p.ScanID == currentScanID {
			continue
		}
		if previous == nil || p.Timestamp.After(previous.Timestamp) {
			previous = p
		}
	}
	return previous
}

// daysBetween returns the floor of the day difference between two
// timestamps, never negative for ordered inputs.
func daysBetween(previous, current time.Time) int {
	return int(current.Sub(previous).Hours() / 24)
}
