package deps

import "github.com/rajyadav1814/repoguard/internal/models"

// Ecosystem identifies a package manifest format.
type Ecosystem string

const (
	EcosystemNPM      Ecosystem = "npm"
	EcosystemPyPI     Ecosystem = "PyPI"
	EcosystemRubyGems Ecosystem = "RubyGems"
)

// Advisory is one entry of the curated advisory table: a package is
// vulnerable when its installed version sorts below MinSafeVersion.
// The table is fixed and in-process, independent of any live feed.
type Advisory struct {
	Ecosystem      Ecosystem
	Package        string
	MinSafeVersion string
	Severity       models.Severity
	Score          float64
	CVEID          string
	Summary        string
}

// advisoryTable is keyed by ecosystem and package name.
var advisoryTable = map[Ecosystem]map[string]Advisory{
	EcosystemNPM: {
		"lodash": {
			Ecosystem: EcosystemNPM, Package: "lodash", MinSafeVersion: "4.17.21",
			Severity: models.SeverityHigh, Score: 7.2, CVEID: "CVE-2021-23337",
			Summary: "Command injection via template",
		},
		"minimist": {
			Ecosystem: EcosystemNPM, Package: "minimist", MinSafeVersion: "1.2.6",
			Severity: models.SeverityCritical, Score: 9.5, CVEID: "CVE-2021-44906",
			Summary: "Prototype pollution",
		},
		"node-fetch": {
			Ecosystem: EcosystemNPM, Package: "node-fetch", MinSafeVersion: "2.6.7",
			Severity: models.SeverityHigh, Score: 7.5, CVEID: "CVE-2022-0235",
			Summary: "Exposure of sensitive information to an unauthorized actor",
		},
		"axios": {
			Ecosystem: EcosystemNPM, Package: "axios", MinSafeVersion: "0.21.2",
			Severity: models.SeverityHigh, Score: 7.0, CVEID: "CVE-2021-3749",
			Summary: "Inefficient regular expression complexity",
		},
		"express": {
			Ecosystem: EcosystemNPM, Package: "express", MinSafeVersion: "4.17.3",
			Severity: models.SeverityMedium, Score: 5.5, CVEID: "CVE-2022-24999",
			Summary: "qs prototype poisoning via query parsing",
		},
	},
	EcosystemPyPI: {
		"pyyaml": {
			Ecosystem: EcosystemPyPI, Package: "pyyaml", MinSafeVersion: "5.4",
			Severity: models.SeverityCritical, Score: 9.0, CVEID: "CVE-2020-14343",
			Summary: "Arbitrary code execution via full_load",
		},
		"django": {
			Ecosystem: EcosystemPyPI, Package: "django", MinSafeVersion: "3.2.14",
			Severity: models.SeverityCritical, Score: 9.5, CVEID: "CVE-2022-34265",
			Summary: "SQL injection in Trunc/Extract",
		},
		"requests": {
			Ecosystem: EcosystemPyPI, Package: "requests", MinSafeVersion: "2.31.0",
			Severity: models.SeverityMedium, Score: 5.5, CVEID: "CVE-2023-32681",
			Summary: "Proxy-Authorization header leaked to destination server",
		},
		"urllib3": {
			Ecosystem: EcosystemPyPI, Package: "urllib3", MinSafeVersion: "1.26.5",
			Severity: models.SeverityHigh, Score: 7.0, CVEID: "CVE-2021-33503",
			Summary: "Catastrophic backtracking in URL authority parsing",
		},
		"flask": {
			Ecosystem: EcosystemPyPI, Package: "flask", MinSafeVersion: "2.2.5",
			Severity: models.SeverityHigh, Score: 7.4, CVEID: "CVE-2023-30861",
			Summary: "Session cookie disclosure via caching proxies",
		},
	},
	EcosystemRubyGems: {
		"rails": {
			Ecosystem: EcosystemRubyGems, Package: "rails", MinSafeVersion: "6.1.7.3",
			Severity: models.SeverityHigh, Score: 7.5, CVEID: "CVE-2023-22795",
			Summary: "ReDoS in Action Dispatch If-None-Match handling",
		},
		"nokogiri": {
			Ecosystem: EcosystemRubyGems, Package: "nokogiri", MinSafeVersion: "1.13.6",
			Severity: models.SeverityHigh, Score: 7.5, CVEID: "CVE-2022-29181",
			Summary: "Improper handling of unexpected data types in XML parsing",
		},
		"rack": {
			Ecosystem: EcosystemRubyGems, Package: "rack", MinSafeVersion: "2.2.6.4",
			Severity: models.SeverityHigh, Score: 7.5, CVEID: "CVE-2023-27530",
			Summary: "DoS via multipart MIME parsing",
		},
	},
}

// LookupAdvisory returns the curated advisory for a package, if any.
// PyPI names are lowercased by the manifest parser before lookup.
func LookupAdvisory(eco Ecosystem, name string) (Advisory, bool) {
	table, ok := advisoryTable[eco]
	if !ok {
		return Advisory{}, false
	}
	adv, ok := table[name]
	return adv, ok
}
