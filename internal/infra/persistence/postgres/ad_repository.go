package postgres

import (
	"context"

	"adradar/internal/domain/entity"
	"adradar/internal/domain/repository"
	"adradar/internal/errors"
	"adradar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adRepository struct {
	db *gorm.DB
}

// NewAdRepository creates a PostgreSQL-backed AdRepository.
func NewAdRepository(db *gorm.DB) repository.AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) CreateAd(ctx context.Context, ad *entity.Ad) error {
	row := toAdModel(ad)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return errors.Wrap(err, "failed to create ad")
	}

	// GORM fills the timestamp columns on insert.
	ad.CreatedAt = row.CreatedAt
	ad.UpdatedAt = row.UpdatedAt

	return nil
}

func (r *adRepository) FindAdByID(ctx context.Context, id uuid.UUID) (*entity.Ad, error) {
	var row model.AdModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAdNotFound
		}

		return nil, errors.Wrap(err, "failed to find ad by id")
	}

	return toAdEntity(&row), nil
}

func (r *adRepository) ListAds(ctx context.Context) ([]*entity.Ad, error) {
	var rows []*model.AdModel
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ads")
	}

	ads := make([]*entity.Ad, 0, len(rows))
	for _, row := range rows {
		ads = append(ads, toAdEntity(row))
	}

	return ads, nil
}

func toAdModel(ad *entity.Ad) *model.AdModel {
	return &model.AdModel{
		ID:          ad.ID,
		Description: ad.Description,
		Budget:      ad.Budget,
		RadiusKm:    ad.RadiusKm,
		Latitude:    ad.Latitude,
		Longitude:   ad.Longitude,
		VideoURL:    ad.VideoURL,
		ImageURL:    ad.ImageURL,
		CreatedAt:   ad.CreatedAt,
		UpdatedAt:   ad.UpdatedAt,
	}
}

func toAdEntity(row *model.AdModel) *entity.Ad {
	return &entity.Ad{
		ID:          row.ID,
		Description: row.Description,
		Budget:      row.Budget,
		RadiusKm:    row.RadiusKm,
		Latitude:    row.Latitude,
		Longitude:   row.Longitude,
		VideoURL:    row.VideoURL,
		ImageURL:    row.ImageURL,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
