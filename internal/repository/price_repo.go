package repository

import (
	"waterpark-pos/internal/model"

	"gorm.io/gorm"
)

type PriceRepository interface {
	FindActive() ([]model.Price, error)
	FindAll() ([]model.Price, error)
	FindByKey(itemKey string) (*model.Price, error)
	Update(price *model.Price) error
	SeedDefaults() error
}

type priceRepo struct {
	db *gorm.DB
}

func NewPriceRepo(db *gorm.DB) PriceRepository {
	return &priceRepo{db}
}

func (r *priceRepo) FindActive() ([]model.Price, error) {
	var prices []model.Price
	err := r.db.Where("is_active = ?", true).Order("item_key ASC").Find(&prices).Error
	return prices, err
}

func (r *priceRepo) FindAll() ([]model.Price, error) {
	var prices []model.Price
	err := r.db.Order("item_key ASC").Find(&prices).Error
	return prices, err
}

func (r *priceRepo) FindByKey(itemKey string) (*model.Price, error) {
	var price model.Price
	if err := r.db.Where("item_key = ?", itemKey).First(&price).Error; err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *priceRepo) Update(price *model.Price) error {
	return r.db.Save(price).Error
}

func (r *priceRepo) SeedDefaults() error {
	for _, def := range model.DefaultPrices {
		var existing model.Price
		err := r.db.Where("item_key = ?", def.ItemKey).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			def.CreatedBy = "seed"
			def.UpdatedBy = "seed"
			if err := r.db.Create(&def).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
