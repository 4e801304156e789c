package gate

import "fmt"

// Role is the closed set of account roles. Handlers and middleware compare
// against these constants only; raw strings stop at ParseRole.
type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleCompany, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// DashboardPath is the fixed post-auth landing path per role. Keeping this a
// closed table (instead of string heuristics on the target URL) rules out
// redirect loops.
func DashboardPath(role Role) string {
	if role == RoleCompany {
		return "/company/dashboard"
	}
	return "/dashboard"
}
