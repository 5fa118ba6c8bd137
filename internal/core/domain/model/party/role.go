package party

import (
	"waterdelivery/internal/pkg/errs"
)

// Role is the closed set of party kinds the core distinguishes. Guards check
// it exhaustively instead of branching on free-form strings.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer places orders and may cancel their own.
	RoleCustomer

	// RoleSupplier responds to nearby orders and delivers them.
	RoleSupplier

	// RoleOperator is the administrative role; it never takes part in the
	// order workflow and only reads reporting views.
	RoleOperator
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleSupplier: "supplier",
		RoleOperator: "operator",
	}
}

// RoleFromString parses a wire-level role name.
func RoleFromString(s string) (Role, error) {
	switch s {
	case "customer":
		return RoleCustomer, nil
	case "supplier":
		return RoleSupplier, nil
	case "operator":
		return RoleOperator, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidError("role")
	}
}

// Validate checks that the Role is one of the declared variants.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleSupplier, RoleOperator:
		return nil
	case RoleUnknown:
		return errs.NewValueIsInvalidError("role")
	default:
		return errs.NewValueIsInvalidError("role")
	}
}

// String returns the wire-level role name. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
