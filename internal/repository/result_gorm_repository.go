package repository

import (
	"ap_quiz_backend/internal/model"
	"ap_quiz_backend/internal/util"
	"context"

	"gorm.io/gorm"
)

// GormResultRepository MySQL 存储，表结构由 database.InitDB 迁移
type GormResultRepository struct {
	DB *gorm.DB
}

func NewGormResultRepository(db *gorm.DB) *GormResultRepository {
	return &GormResultRepository{DB: db}
}

func (r *GormResultRepository) Backend() string {
	return util.BackendMySQL
}

func (r *GormResultRepository) EnsureHeader(ctx context.Context) error {
	return nil
}

func (r *GormResultRepository) AppendRow(ctx context.Context, rec *model.ResultRecord) error {
	return instrument(ctx, r.Backend(), "append_row", func(ctx context.Context) error {
		return r.DB.WithContext(ctx).Create(rec).Error
	})
}

func (r *GormResultRepository) ReadAll(ctx context.Context) ([]model.ResultRecord, error) {
	var records []model.ResultRecord
	err := instrument(ctx, r.Backend(), "read_all", func(ctx context.Context) error {
		return r.DB.WithContext(ctx).Order("id asc").Find(&records).Error
	})
	return records, err
}

func (r *GormResultRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
