package entity

import "strings"

// UserRole is one of a closed set of library roles.
type UserRole string

const (
	RoleStudent   UserRole = "STUDENT"
	RoleTeacher   UserRole = "TEACHER"
	RoleLibrarian UserRole = "LIBRARIAN"
	RoleAdmin     UserRole = "ADMIN"
)

// Roles lists every valid role in ascending privilege.
var Roles = []UserRole{RoleStudent, RoleTeacher, RoleLibrarian, RoleAdmin}

func ParseUserRole(raw string) (UserRole, error) {
	normalized := UserRole(strings.ToUpper(strings.TrimSpace(raw)))
	if normalized == "" {
		return "", invalid(ErrInvalidRole, "role cannot be blank")
	}
	if !normalized.IsValid() {
		return "", invalid(ErrInvalidRole, "invalid role: "+raw+". Allowed roles: STUDENT, TEACHER, LIBRARIAN, ADMIN")
	}
	return normalized, nil
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleLibrarian, RoleAdmin:
		return true
	}
	return false
}

func (r UserRole) CanBorrowBooks() bool {
	return r == RoleStudent || r == RoleTeacher
}

func (r UserRole) HasAdministrativePrivileges() bool {
	return r == RoleLibrarian || r == RoleAdmin
}

func (r UserRole) String() string { return string(r) }
