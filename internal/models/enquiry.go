package models

// Enquiry is a customer question about a specific warehouse
// DB: enquiries
type Enquiry struct {
	BaseModel
	ReferenceID string  `gorm:"column:reference_id;size:36;not null;uniqueIndex:enquiries_reference_id_key" json:"reference_id"`
	WarehouseID uint    `gorm:"column:warehouse_id;not null;index:idx_enq_warehouse" json:"warehouse_id"`
	Name        string  `gorm:"column:name;size:255;not null" json:"name"`
	Email       string  `gorm:"column:email;size:255;not null" json:"email"`
	Phone       string  `gorm:"column:phone;size:30;not null" json:"phone"`
	Message     *string `gorm:"column:message;type:text" json:"message,omitempty"`

	// Relations
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

func (Enquiry) TableName() string {
	return "enquiries"
}
