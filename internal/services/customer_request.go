package services

import (
	"context"
	"errors"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/database"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/models"
	"gorm.io/gorm"
)

type CustomerRequestService struct {
	db *database.DB
}

func NewCustomerRequestService(db *database.DB) *CustomerRequestService {
	return &CustomerRequestService{db: db}
}

type CreateCustomerRequestRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Location     *string `json:"location,omitempty"`
	MinSpaceSqft *int64  `json:"min_space_sqft,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
}

type CustomerRequestListResponse struct {
	Items      []models.CustomerRequest `json:"items"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"total_pages"`
}

// Create stores a customer space requirement
func (s *CustomerRequestService) Create(ctx context.Context, req *CreateCustomerRequestRequest) (*models.CustomerRequest, error) {
	if req.Name == "" || req.Email == "" || req.Phone == "" {
		return nil, errors.New("name, email and phone are required")
	}

	request := models.CustomerRequest{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Location:     req.Location,
		MinSpaceSqft: req.MinSpaceSqft,
		Requirements: req.Requirements,
		Status:       "new",
	}

	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

// List retrieves customer requests with pagination, newest first
func (s *CustomerRequestService) List(ctx context.Context, page, limit int) (*CustomerRequestListResponse, error) {
	var requests []models.CustomerRequest
	var total int64

	query := s.db.WithContext(ctx).Model(&models.CustomerRequest{})

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&requests).Error; err != nil {
		return nil, err
	}

	return &CustomerRequestListResponse{
		Items:      requests,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// UpdateStatus moves a request through its triage states
func (s *CustomerRequestService) UpdateStatus(ctx context.Context, id uint, status string) (*models.CustomerRequest, error) {
	var request models.CustomerRequest
	if err := s.db.WithContext(ctx).First(&request, id).Error; err != nil {
		return nil, err
	}

	request.Status = status
	if err := s.db.WithContext(ctx).Save(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

// Delete removes a customer request
func (s *CustomerRequestService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.CustomerRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
