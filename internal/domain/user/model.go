package user

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID string
	Email  string
	Roles  []string
}

const (
	RoleAdmin       = "admin"
	RoleLeagueAdmin = "league_admin"
	RoleAppAdmin    = "app_admin"
)

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAdminRole reports whether the principal carries any role that grants
// administrative rights over leagues it does not own.
func (p Principal) HasAdminRole() bool {
	return p.HasRole(RoleAdmin) || p.HasRole(RoleLeagueAdmin) || p.HasRole(RoleAppAdmin)
}
