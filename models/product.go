package models

import "gorm.io/gorm"

type Brand struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Packaging describes the container a product is sold in, e.g. "Bidón 20L".
type Packaging struct {
	gorm.Model
	Name   string  `gorm:"not null" json:"name"`
	Liters float64 `json:"liters"`
	Type   string  `json:"type"`
}

type Product struct {
	gorm.Model
	Code        string     `gorm:"index" json:"code"`
	Name        string     `gorm:"not null" json:"name"`
	BasePrice   float64    `json:"base_price"`
	Stock       int        `json:"stock"`
	BrandID     *uint      `json:"brand_id"`
	Brand       *Brand     `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	PackagingID *uint      `json:"packaging_id"`
	Packaging   *Packaging `json:"packaging,omitempty" gorm:"foreignKey:PackagingID"`
}

// BrandName returns the brand name or "" when the product has none.
func (p Product) BrandName() string {
	if p.Brand == nil {
		return ""
	}
	return p.Brand.Name
}

// Available reports whether the product can be sold.
func (p Product) Available() bool {
	return p.Stock > 0 && p.BasePrice > 0
}
