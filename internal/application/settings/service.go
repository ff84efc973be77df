package settings

import (
	"context"

	"github.com/pos/backend/internal/domain/system"
)

// SettingResponse represents a setting in responses
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Service handles the store settings key/value table
type Service struct {
	settingRepo system.SettingRepository
}

// NewService creates a new settings service
func NewService(settingRepo system.SettingRepository) *Service {
	return &Service{settingRepo: settingRepo}
}

// Get retrieves a setting value by key
func (s *Service) Get(ctx context.Context, key string) (*SettingResponse, error) {
	setting, err := s.settingRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return &SettingResponse{Key: setting.Key, Value: setting.Value}, nil
}

// List retrieves all settings
func (s *Service) List(ctx context.Context) ([]SettingResponse, error) {
	settings, err := s.settingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]SettingResponse, 0, len(settings))
	for i := range settings {
		responses = append(responses, SettingResponse{Key: settings[i].Key, Value: settings[i].Value})
	}
	return responses, nil
}

// Set creates or updates a setting
func (s *Service) Set(ctx context.Context, key, value string) (*SettingResponse, error) {
	setting, err := s.settingRepo.FindByKey(ctx, key)
	if err == nil {
		setting.UpdateValue(value)
	} else {
		setting, err = system.NewSetting(key, value)
		if err != nil {
			return nil, err
		}
	}

	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}
	return &SettingResponse{Key: setting.Key, Value: setting.Value}, nil
}
