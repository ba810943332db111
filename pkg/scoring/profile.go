package scoring

// Profile names one consistent set of rating cutoffs. The repository's
// history carried several divergent threshold sets; they are consolidated
// here as named profiles rather than scattered constants.
type Profile struct {
	Name      string `json:"name"`
	Surfable  int    `json:"surfable"`
	Good      int    `json:"good"`
	Excellent int    `json:"excellent"`
}

var (
	// Canonical is the default 4-tier scheme.
	Canonical = Profile{Name: "canonical", Surfable: 45, Good: 65, Excellent: 80}

	// Lenient keeps the older, more generous cutoffs around for anyone who
	// preferred the rosier forecasts.
	Lenient = Profile{Name: "lenient", Surfable: 40, Good: 50, Excellent: 75}
)

var profiles = map[string]Profile{
	Canonical.Name: Canonical,
	Lenient.Name:   Lenient,
}

// ProfileByName looks up a registered profile.
func ProfileByName(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Rate maps a score to its tier under this profile.
func (p Profile) Rate(score int) Rating {
	switch {
	case score >= p.Excellent:
		return Excellent
	case score >= p.Good:
		return Good
	case score >= p.Surfable:
		return Marginal
	default:
		return Poor
	}
}
