package models

import (
	"github.com/pos/backend/internal/domain/system"
)

// SettingModel is the persistence model for the Setting domain entity.
type SettingModel struct {
	BaseModel
	Key   string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Value string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}

// ToDomain converts the persistence model to a domain Setting entity.
func (m *SettingModel) ToDomain() *system.Setting {
	return &system.Setting{
		BaseEntity: m.BaseModel.ToDomain(),
		Key:        m.Key,
		Value:      m.Value,
	}
}

// SettingModelFromDomain builds a persistence model from a domain Setting.
func SettingModelFromDomain(s *system.Setting) *SettingModel {
	m := &SettingModel{
		Key:   s.Key,
		Value: s.Value,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
