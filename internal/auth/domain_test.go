package auth

import "testing"

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role    Role
		reg     bool
		sponsor bool
		manage  bool
	}{
		{RoleIndividual, true, false, false},
		{RoleUniversityClub, true, false, false},
		{RoleCompany, false, true, false},
		{RoleMinistry, false, false, true},
		{Role(""), false, false, false},
		{Role("unknown"), false, false, false},
	}
	for _, tc := range cases {
		if got := tc.role.CanRegister(); got != tc.reg {
			t.Errorf("%q CanRegister = %v, want %v", tc.role, got, tc.reg)
		}
		if got := tc.role.CanSponsor(); got != tc.sponsor {
			t.Errorf("%q CanSponsor = %v, want %v", tc.role, got, tc.sponsor)
		}
		if got := tc.role.CanManageEvents(); got != tc.manage {
			t.Errorf("%q CanManageEvents = %v, want %v", tc.role, got, tc.manage)
		}
	}
}

func TestRolesAreValid(t *testing.T) {
	for _, role := range Roles() {
		if !role.Valid() {
			t.Errorf("listed role %q should be valid", role)
		}
	}
	if Role("admin").Valid() {
		t.Errorf("unknown role should not be valid")
	}
}
