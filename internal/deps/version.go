package deps

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// rangePrefixes are stripped from declared versions before comparison.
// Order matters: multi-character operators are stripped before their
// single-character prefixes.
var rangePrefixes = []string{"~>", ">=", "<=", "==", "^", "~", ">", "<", "=", "v"}

// NormalizeVersion strips common range prefixes and surrounding whitespace
// from a declared version string.
func NormalizeVersion(raw string) string {
	v := strings.TrimSpace(raw)
	for _, p := range rangePrefixes {
		if strings.HasPrefix(v, p) {
			v = strings.TrimSpace(strings.TrimPrefix(v, p))
			break
		}
	}
	return v
}

// CompareVersions compares two version strings using numeric segment
// ordering (1.2.10 sorts after 1.2.3). It returns a negative value when
// a < b, zero when equal, positive when a > b. An error is returned when
// either version cannot be parsed.
func CompareVersions(a, b string) (int, error) {
	va, err := goversion.NewVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := goversion.NewVersion(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}
