package repository

import (
	"waterpark-pos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	FindAll() ([]model.Setting, error)
	Get(key string) (string, error)
	Upsert(key, value, updatedBy string) error
	SeedDefaults() error
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) FindAll() ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.Order("key ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepo) Get(key string) (string, error) {
	var setting model.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (r *settingRepo) Upsert(key, value, updatedBy string) error {
	setting := model.Setting{Key: key, Value: value}
	setting.CreatedBy = updatedBy
	setting.UpdatedBy = updatedBy
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(&setting).Error
}

func (r *settingRepo) SeedDefaults() error {
	for key, value := range model.DefaultSettings {
		var existing model.Setting
		err := r.db.Where("key = ?", key).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := r.Upsert(key, value, "seed"); err != nil {
				return err
			}
		}
	}
	return nil
}
