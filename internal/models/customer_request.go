package models

// CustomerRequest is a free-form space requirement submitted by a prospect
// not tied to any listed warehouse
// DB: customer_requests
type CustomerRequest struct {
	BaseModel
	Name         string  `gorm:"column:name;size:255;not null" json:"name"`
	Email        string  `gorm:"column:email;size:255;not null" json:"email"`
	Phone        string  `gorm:"column:phone;size:30;not null" json:"phone"`
	Location     *string `gorm:"column:location;size:255" json:"location,omitempty"`
	MinSpaceSqft *int64  `gorm:"column:min_space_sqft" json:"min_space_sqft,omitempty"`
	Requirements *string `gorm:"column:requirements;type:text" json:"requirements,omitempty"`
	Status       string  `gorm:"column:status;size:20;not null;default:new" json:"status"`
}

func (CustomerRequest) TableName() string {
	return "customer_requests"
}
