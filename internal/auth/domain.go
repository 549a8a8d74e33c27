package auth

// Role is the account type issued at registration and echoed back by the
// login endpoint. It decides which event actions the UI offers; the server
// re-checks every action regardless of what the UI rendered.
type Role string

const (
	// RoleIndividual may volunteer for events.
	RoleIndividual Role = "individual"
	// RoleUniversityClub may volunteer for events on behalf of a club.
	RoleUniversityClub Role = "university_club"
	// RoleCompany may sponsor events.
	RoleCompany Role = "company"
	// RoleMinistry may create and update events.
	RoleMinistry Role = "ministry"
)

// Roles lists every registrable role in display order.
func Roles() []Role {
	return []Role{RoleIndividual, RoleUniversityClub, RoleCompany, RoleMinistry}
}

// Valid reports whether the tag is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleIndividual, RoleUniversityClub, RoleCompany, RoleMinistry:
		return true
	}
	return false
}

// CanRegister reports whether the role may volunteer for an event.
func (r Role) CanRegister() bool {
	return r == RoleIndividual || r == RoleUniversityClub
}

// CanSponsor reports whether the role may sponsor an event.
func (r Role) CanSponsor() bool {
	return r == RoleCompany
}

// CanManageEvents reports whether the role may create and update events.
func (r Role) CanManageEvents() bool {
	return r == RoleMinistry
}

// Label returns the human-readable name used in the registration select.
func (r Role) Label() string {
	switch r {
	case RoleIndividual:
		return "Individual"
	case RoleUniversityClub:
		return "University Club"
	case RoleCompany:
		return "Company"
	case RoleMinistry:
		return "Ministry"
	}
	return string(r)
}
