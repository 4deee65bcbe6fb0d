package models

import "time"

// RepoFile is one fetched repository file. The content is held in memory
// for the lifetime of a single scan and treated as immutable by the
// detectors.
type RepoFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// TrendChanges holds signed deltas between the current scan and the most
// recent prior scan. Regressions surface as positive deltas; improvements
// as negative ones. Values are never clamped.
type TrendChanges struct {
	Critical int     `json:"critical"`
	High     int     `json:"high"`
	Medium   int     `json:"medium"`
	Low      int     `json:"low"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

// TrendResult compares the current scan against the most recent prior scan
// of the same repository. FirstScan is set when no prior scan exists.
type TrendResult struct {
	FirstScan         bool         `json:"first_scan,omitempty"`
	PreviousScanID    string       `json:"previous_scan_id,omitempty"`
	PreviousScanDate  string       `json:"previous_scan_date,omitempty"`
	DaysSincePrevious int          `json:"days_since_previous,omitempty"`
	Changes           TrendChanges `json:"changes"`
}

// Statistics summarizes one completed scan.
type Statistics struct {
	FilesScanned     int              `json:"files_scanned"`
	IssuesBySeverity map[Severity]int `json:"issues_by_severity"`
	Trends           *TrendResult     `json:"trends,omitempty"`
}

// ScanResult is the complete, write-once output of one scan invocation.
// A result is never mutated after it is returned; a later scan of the
// same repository supersedes it with a fresh scan id.
type ScanResult struct {
	RepoName      string     `json:"repo_name"`
	ScanID        string     `json:"scan_id"`
	Branch        string     `json:"branch,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
	LastCommitSHA string     `json:"last_commit_sha,omitempty"`
	Findings      []Finding  `json:"findings"`
	Statistics    Statistics `json:"statistics"`
}

// TotalIssues returns the number of findings in the result.
func (r *ScanResult) TotalIssues() int {
	return len(r.Findings)
}

// SeverityCount returns the recorded count for a severity, falling back to
// recounting the findings when the histogram is missing (repaired
// historical records do not always carry statistics).
func (r *ScanResult) SeverityCount(s Severity) int {
	if r.Statistics.IssuesBySeverity != nil {
		return r.Statistics.IssuesBySeverity[s]
	}
	count := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			count++
		}
	}
	return count
}
