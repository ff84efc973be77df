package system

import (
	"context"
	"time"

	"github.com/pos/backend/internal/domain/shared"
)

// Setting is a key/value pair of store configuration
type Setting struct {
	shared.BaseEntity
	Key   string
	Value string
}

// Well-known setting keys
const (
	SettingKeyStoreName    = "store_name"
	SettingKeyStoreAddress = "store_address"
	SettingKeyStorePhone   = "store_phone"
	SettingKeyCurrency     = "currency"
)

// NewSetting creates a new setting
func NewSetting(key, value string) (*Setting, error) {
	if key == "" {
		return nil, shared.NewDomainError("INVALID_SETTING_KEY", "Setting key cannot be empty")
	}
	if len(key) > 100 {
		return nil, shared.NewDomainError("INVALID_SETTING_KEY", "Setting key cannot exceed 100 characters")
	}

	return &Setting{
		BaseEntity: shared.NewBaseEntity(),
		Key:        key,
		Value:      value,
	}, nil
}

// UpdateValue replaces the setting value
func (s *Setting) UpdateValue(value string) {
	s.Value = value
	s.UpdatedAt = time.Now()
}

// SettingRepository defines the interface for setting persistence
type SettingRepository interface {
	// FindByKey finds a setting by key
	FindByKey(ctx context.Context, key string) (*Setting, error)

	// FindAll returns all settings
	FindAll(ctx context.Context) ([]Setting, error)

	// Save creates or updates a setting
	Save(ctx context.Context, setting *Setting) error
}
