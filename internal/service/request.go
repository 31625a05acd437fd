package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/agriconnect/marketplace/internal/auth"
	"github.com/agriconnect/marketplace/internal/models"
	"github.com/agriconnect/marketplace/internal/transport"
)

// RequestService covers produce sourcing requests (buyer → farmers) and
// identification-assistance requests (farmer → extension officers).
type RequestService struct {
	DB *gorm.DB
}

func (s *RequestService) CreateProduceRequest(ctx context.Context, ident auth.Identity, req transport.CreateProduceRequest) (*models.ProduceRequest, error) {
	if ident.Role != models.RoleBuyer {
		return nil, fmt.Errorf("%w: only buyers can create produce requests", ErrForbidden)
	}
	if req.CropName == "" || req.QuantityNeeded == 0 || req.DesiredStartDate.IsZero() {
		return nil, fmt.Errorf("%w: crop_name, quantity_needed and desired_start_date are required", ErrValidation)
	}

	pr := models.ProduceRequest{
		BuyerID:          ident.UserID,
		CropName:         req.CropName,
		QuantityNeeded:   req.QuantityNeeded,
		Specifications:   req.Specifications,
		DesiredStartDate: req.DesiredStartDate,
		Status:           models.RequestStatusOpen,
	}
	if err := s.DB.WithContext(ctx).Create(&pr).Error; err != nil {
		return nil, err
	}
	return &pr, nil
}

// ListOpenProduceRequests is the farmer-facing view of open demand.
func (s *RequestService) ListOpenProduceRequests(ctx context.Context, ident auth.Identity) ([]transport.ProduceRequestListing, error) {
	if ident.Role != models.RoleFarmer {
		return nil, fmt.Errorf("%w: only farmers can view produce requests", ErrForbidden)
	}

	var rows []transport.ProduceRequestListing
	err := s.DB.WithContext(ctx).
		Table("produce_requests").
		Select("produce_requests.id, produce_requests.buyer_id, users.name AS buyer_name, produce_requests.crop_name, produce_requests.quantity_needed, produce_requests.specifications, produce_requests.desired_start_date, produce_requests.status, produce_requests.created_at").
		Joins("JOIN users ON users.id = produce_requests.buyer_id").
		Where("produce_requests.status = ?", models.RequestStatusOpen).
		Order("produce_requests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *RequestService) CreateIDRequest(ctx context.Context, ident auth.Identity, req transport.CreateIDRequest) (*models.IDRequest, error) {
	if ident.Role != models.RoleFarmer {
		return nil, fmt.Errorf("%w: only farmers can submit identification requests", ErrForbidden)
	}
	if req.ImageURL == "" {
		return nil, fmt.Errorf("%w: image_url is required", ErrValidation)
	}

	ir := models.IDRequest{
		FarmerID:    ident.UserID,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Status:      models.RequestStatusOpen,
	}
	if err := s.DB.WithContext(ctx).Create(&ir).Error; err != nil {
		return nil, err
	}
	return &ir, nil
}

func (s *RequestService) ListOpenIDRequests(ctx context.Context, ident auth.Identity) ([]transport.IDRequestListing, error) {
	if ident.Role != models.RoleExtensionOfficer {
		return nil, fmt.Errorf("%w: only extension officers can view identification requests", ErrForbidden)
	}

	var rows []transport.IDRequestListing
	err := s.DB.WithContext(ctx).
		Table("id_requests").
		Select("id_requests.id, id_requests.farmer_id, users.name AS farmer_name, id_requests.image_url, id_requests.description, id_requests.status, id_requests.created_at").
		Joins("JOIN users ON users.id = id_requests.farmer_id").
		Where("id_requests.status = ?", models.RequestStatusOpen).
		Order("id_requests.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RespondIDRequest closes an open identification request with the
// officer's answer. The status guard in the WHERE clause makes a repeat
// response (or a response to an unknown id) match zero rows.
func (s *RequestService) RespondIDRequest(ctx context.Context, ident auth.Identity, requestID uint, response string) error {
	if ident.Role != models.RoleExtensionOfficer {
		return fmt.Errorf("%w: only extension officers can respond to requests", ErrForbidden)
	}
	if response == "" {
		return fmt.Errorf("%w: a response message is required", ErrValidation)
	}

	now := time.Now().UTC()
	res := s.DB.WithContext(ctx).
		Model(&models.IDRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestStatusOpen).
		Updates(map[string]interface{}{
			"status":       models.RequestStatusClosed,
			"response":     response,
			"officer_id":   ident.UserID,
			"responded_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: request not found or has already been closed", ErrNotFound)
	}
	return nil
}
