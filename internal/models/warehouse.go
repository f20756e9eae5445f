package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Int64List stores a JSON-encoded array of integers in a single column.
// Warehouses can offer several distinct space options, so capacity is a
// sequence, not a scalar.
type Int64List []int64

func (l *Int64List) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Int64List", value)
	}

	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

func (l Int64List) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (Int64List) GormDataType() string {
	return "jsonb"
}

// Warehouse represents a listed warehouse
// DB: warehouses
type Warehouse struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Address       string    `gorm:"column:address;type:text;not null" json:"address"`
	City          string    `gorm:"column:city;size:100;not null;index:idx_wh_city" json:"city"`
	State         string    `gorm:"column:state;size:100;not null;index:idx_wh_state" json:"state"`
	PostalCode    *string   `gorm:"column:postal_code;size:20" json:"postal_code,omitempty"`
	SpaceSqft     Int64List `gorm:"column:space_sqft;type:jsonb" json:"space_sqft"`
	ClearHeightFt *float64  `gorm:"column:clear_height_ft" json:"clear_height_ft,omitempty"`
	NumDocks      *int      `gorm:"column:num_docks" json:"num_docks,omitempty"`
	RatePerSqft   *float64  `gorm:"column:rate_per_sqft;index:idx_wh_rate" json:"rate_per_sqft,omitempty"`
	WarehouseType *string   `gorm:"column:warehouse_type;size:100;index:idx_wh_type" json:"warehouse_type,omitempty"`
	Zone          *string   `gorm:"column:zone;size:100;index:idx_wh_zone" json:"zone,omitempty"`
	Compliances   *string   `gorm:"column:compliances;type:text" json:"compliances,omitempty"`
	ContactPerson *string   `gorm:"column:contact_person;size:255" json:"contact_person,omitempty"`
	// Photos is a serialized value: either a bare URL or a JSON array of
	// URLs. Decoded by the listing response assembler.
	Photos    *string        `gorm:"column:photos;type:text" json:"-"`
	IsVisible bool           `gorm:"column:is_visible;not null;default:true;index:idx_wh_visible" json:"is_visible"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;index:idx_wh_created,sort:desc" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index:idx_wh_deleted" json:"deleted_at,omitempty"`

	// Relations
	Amenity *WarehouseAmenity `gorm:"foreignKey:WarehouseID" json:"amenity,omitempty"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}

// WarehouseAmenity holds the optional fire-safety details of a warehouse
// DB: warehouse_amenities
type WarehouseAmenity struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	WarehouseID        uint      `gorm:"column:warehouse_id;not null;uniqueIndex:warehouse_amenities_warehouse_id_key" json:"warehouse_id"`
	FireNocAvailable   *bool     `gorm:"column:fire_noc_available" json:"fire_noc_available,omitempty"`
	FireSafetyMeasures *string   `gorm:"column:fire_safety_measures;type:text" json:"fire_safety_measures,omitempty"`
	CreatedAt          time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (WarehouseAmenity) TableName() string {
	return "warehouse_amenities"
}
