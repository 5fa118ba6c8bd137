// Package party contains the Party aggregate: any authenticated participant
// of the workflow (customer, supplier, or operator) together with its
// registered location. Registration and credentials live outside the core;
// the aggregate only carries what matching and authorization need.
package party

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
)

// ErrPartyIsNotConstructed is returned when a Party instance was not created
// through NewParty.
var ErrPartyIsNotConstructed = errors.New("Party must be created via NewParty constructor")

// Party represents a registered participant. Only suppliers carry a
// meaningful location; for everyone else it defaults to the origin point.
type Party struct {
	id       kernel.UUID
	name     string
	email    string
	role     Role
	location kernel.GeoPoint

	isConstructed bool
}

// NewParty creates a Party. An unconstructed location is replaced by the
// origin default rather than rejected, mirroring how registrations without a
// location are stored.
func NewParty(id kernel.UUID, name string, email string, role Role, location kernel.GeoPoint) (*Party, error) {
	p := &Party{
		email:         email,
		isConstructed: true,
	}

	if location.Validate() != nil {
		location = kernel.OriginGeoPoint()
	}
	p.location = location

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setRole(role),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Party instance was properly constructed.
func (p *Party) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartyIsNotConstructed
	}

	return nil
}

// ID returns the party's unique identifier.
func (p *Party) ID() kernel.UUID {
	return p.id
}

// Name returns the display name.
func (p *Party) Name() string {
	return p.name
}

// Email returns the contact email.
func (p *Party) Email() string {
	return p.email
}

// Role returns the party's role.
func (p *Party) Role() Role {
	return p.role
}

// Location returns the registered location. Meaningful for suppliers; the
// origin default otherwise.
func (p *Party) Location() kernel.GeoPoint {
	return p.location
}

// IsSupplier reports whether the party participates in order matching.
func (p *Party) IsSupplier() bool {
	return p.role == RoleSupplier
}

func (p *Party) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Party) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Party) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	p.role = role
	return nil
}
