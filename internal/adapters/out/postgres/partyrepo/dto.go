// Package partyrepo provides data transfer objects and mapping functions for
// party persistence.
package partyrepo

import (
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/party"

	"github.com/google/uuid"
)

// PartyDTO represents the database structure for persisting parties.
type PartyDTO struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name     string      `gorm:""`
	Email    string      `gorm:"index"`
	Role     int         `gorm:"index"`
	Location GeoPointDTO `gorm:"embedded"`
}

// TableName specifies the database table name for party entities.
func (PartyDTO) TableName() string {
	return "parties"
}

// GeoPointDTO represents the embedded registered coordinates within the
// parties table.
type GeoPointDTO struct {
	Lon float64 `gorm:"column:lon"`
	Lat float64 `gorm:"column:lat"`
}

// fromDomain converts a party domain aggregate to its database representation.
func fromDomain(aggregate *party.Party) PartyDTO {
	return PartyDTO{
		ID:    aggregate.ID().Bytes(),
		Name:  aggregate.Name(),
		Email: aggregate.Email(),
		Role:  int(aggregate.Role()),
		Location: GeoPointDTO{
			Lon: aggregate.Location().Lon(),
			Lat: aggregate.Location().Lat(),
		},
	}
}

// toDomain converts a database DTO to a party domain aggregate.
func toDomain(dto PartyDTO) (*party.Party, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Location.Lon, dto.Location.Lat)
	if err != nil {
		return nil, err
	}

	return party.NewParty(id, dto.Name, dto.Email, party.Role(dto.Role), location)
}
