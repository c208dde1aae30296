package model

// FuelType is immutable reference data: Diesel, Premium, Unleaded.
type FuelType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

// Pump is a fixed dispensing point bound to one fuel type.
type Pump struct {
	ID         uint     `gorm:"primaryKey"`
	FuelTypeID uint     `gorm:"not null;index"`
	Label      string   `gorm:"not null"`
	FuelType   FuelType `gorm:"foreignKey:FuelTypeID"`
}

// Seed reference data. Pump ids are what operators refer to, so they are fixed.
var (
	SeedFuelTypes = []FuelType{
		{ID: 1, Name: "Diesel"},
		{ID: 2, Name: "Premium"},
		{ID: 3, Name: "Unleaded"},
	}
	SeedPumps = []Pump{
		{ID: 1, FuelTypeID: 1, Label: "Pump 1"},
		{ID: 2, FuelTypeID: 1, Label: "Pump 2"},
		{ID: 3, FuelTypeID: 2, Label: "Pump 3"},
		{ID: 4, FuelTypeID: 2, Label: "Pump 4"},
		{ID: 5, FuelTypeID: 3, Label: "Pump 5"},
		{ID: 6, FuelTypeID: 3, Label: "Pump 6"},
	}
)
