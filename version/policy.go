package version

import "strings"

// Policy selects the grammar accepted by Parse.
type Policy uint8

const (
	// PolicyStrict requires MAJOR.MINOR.PATCH with optional -suffix and +build.
	PolicyStrict Policy = iota
	// PolicyLoose requires only MAJOR; minor and patch may be omitted.
	PolicyLoose
	// PolicyNPM is PolicyLoose plus a leading 'v' and x/X/* wildcard components.
	PolicyNPM
	// PolicyIvy is accepted as a tag and parsed exactly like PolicyLoose.
	// Dynamic ranges such as "4.2.+" are not interpreted.
	PolicyIvy
)

// String returns a stable textual representation for Policy.
func (p Policy) String() string {
	switch p {
	case PolicyLoose:
		return "loose"
	case PolicyNPM:
		return "npm"
	case PolicyIvy:
		return "ivy"
	default:
		return "strict"
	}
}

// ParsePolicy maps free-form tokens to Policy.
// Supported aliases (case-insensitive):
//
//	strict: "strict","semver","s"
//	loose:  "loose","lenient","l"
//	npm:    "npm","node","n"
//	ivy:    "ivy","gradle","i"
//
// Unknown values fall back to PolicyStrict.
func ParsePolicy(s string) Policy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "loose", "lenient", "l":
		return PolicyLoose
	case "npm", "node", "n":
		return PolicyNPM
	case "ivy", "gradle", "i":
		return PolicyIvy
	default:
		return PolicyStrict
	}
}

// allowsWildcards reports whether x/X/* are accepted as minor or patch.
func (p Policy) allowsWildcards() bool {
	return p == PolicyNPM
}

// requiresFull reports whether minor and patch are mandatory.
func (p Policy) requiresFull() bool {
	return p == PolicyStrict
}
