package services

import (
	"context"
	"errors"
	"log"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/config"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/database"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/models"
	"github.com/WareOnGo/WareOnGo-Website-Backend/pkg/email"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnquiryService struct {
	db    *database.DB
	email *email.EmailService
	cfg   *config.Config
}

func NewEnquiryService(db *database.DB, cfg *config.Config) *EnquiryService {
	return &EnquiryService{
		db:    db,
		email: email.NewEmailService(cfg),
		cfg:   cfg,
	}
}

type CreateEnquiryRequest struct {
	WarehouseID uint    `json:"warehouse_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Message     *string `json:"message,omitempty"`
}

type EnquiryListResponse struct {
	Items      []models.Enquiry `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// Create stores an enquiry against a visible warehouse and fires a
// best-effort notification email. A notification failure never fails the
// enquiry itself.
func (s *EnquiryService) Create(ctx context.Context, req *CreateEnquiryRequest) (*models.Enquiry, error) {
	if req.WarehouseID == 0 || req.Name == "" || req.Email == "" || req.Phone == "" {
		return nil, errors.New("warehouse_id, name, email and phone are required")
	}

	var warehouse models.Warehouse
	err := s.db.WithContext(ctx).
		Where("is_visible = ?", true).
		First(&warehouse, req.WarehouseID).Error
	if err != nil {
		return nil, errors.New("warehouse not found")
	}

	enquiry := models.Enquiry{
		ReferenceID: uuid.New().String(),
		WarehouseID: req.WarehouseID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
	}

	if err := s.db.WithContext(ctx).Create(&enquiry).Error; err != nil {
		return nil, err
	}

	if s.cfg.EnquiryNotifyEmail != "" {
		go func(e models.Enquiry, address string) {
			if err := s.email.SendEnquiryNotification(s.cfg.EnquiryNotifyEmail, &e, address); err != nil {
				log.Printf("enquiry notification failed for %s: %v", e.ReferenceID, err)
			}
		}(enquiry, warehouse.Address)
	}

	return &enquiry, nil
}

// List retrieves enquiries with pagination, newest first
func (s *EnquiryService) List(ctx context.Context, page, limit int) (*EnquiryListResponse, error) {
	var enquiries []models.Enquiry
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Enquiry{}).Preload("Warehouse")

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&enquiries).Error; err != nil {
		return nil, err
	}

	return &EnquiryListResponse{
		Items:      enquiries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// GetByID retrieves one enquiry with its warehouse
func (s *EnquiryService) GetByID(ctx context.Context, id uint) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	err := s.db.WithContext(ctx).Preload("Warehouse").First(&enquiry, id).Error
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

// Delete removes an enquiry
func (s *EnquiryService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Enquiry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
