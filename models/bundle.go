package models

import (
	"gorm.io/gorm"
)

// Supported telecom networks
const (
	NetworkYello      = "yello"
	NetworkTelecel    = "telecel"
	NetworkAirtelTigo = "airteltigo"
)

// IsValidNetwork reports whether the given network name is one we sell for
func IsValidNetwork(network string) bool {
	switch network {
	case NetworkYello, NetworkTelecel, NetworkAirtelTigo:
		return true
	}
	return false
}

// Bundle represents a purchasable data bundle in the catalog
type Bundle struct {
	gorm.Model
	Network  string  `json:"network" gorm:"index:idx_bundles_network_capacity"`
	Capacity string  `json:"capacity" gorm:"index:idx_bundles_network_capacity"`
	Price    float64 `json:"price"`
	Validity string  `json:"validity"`
	IsActive bool    `json:"is_active" gorm:"default:true"`
}
