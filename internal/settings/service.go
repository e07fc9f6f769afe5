package settings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/compass/backend/internal/models"
)

var ErrValidation = errors.New("validation")

// Service owns the single settings row. The row is created with defaults on
// first read so callers never see a missing configuration.
type Service struct {
	DB                *gorm.DB
	MinDepositPercent float64
}

func NewService(db *gorm.DB, minDepositPercent float64) *Service {
	return &Service{DB: db, MinDepositPercent: minDepositPercent}
}

func (s *Service) Get(ctx context.Context) (*models.Setting, error) {
	var setting models.Setting
	err := s.DB.WithContext(ctx).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.Setting{
			MinDepositPercent: s.MinDepositPercent,
			FeatureFlags:      map[string]bool{},
		}
		if err := s.DB.WithContext(ctx).Create(&setting).Error; err != nil {
			return nil, err
		}
		return &setting, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

type UpdateInput struct {
	MinDepositPercent *float64        `json:"minDepositPercent"`
	FeatureFlags      map[string]bool `json:"featureFlags"`
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (*models.Setting, error) {
	setting, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if in.MinDepositPercent != nil {
		if *in.MinDepositPercent < 1 || *in.MinDepositPercent > 100 {
			return nil, fmt.Errorf("%w: minDepositPercent must be between 1 and 100", ErrValidation)
		}
		setting.MinDepositPercent = *in.MinDepositPercent
	}
	if in.FeatureFlags != nil {
		setting.FeatureFlags = in.FeatureFlags
	}

	if err := s.DB.WithContext(ctx).Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
