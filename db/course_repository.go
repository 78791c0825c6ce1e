package db

import (
	"context"

	"gorm.io/gorm"
)

// CourseRepository is the metadata store for course identity.
type CourseRepository interface {
	// CreateWithChunks inserts the course and its chunks atomically if the
	// title is new and reports whether an insert happened. Re-ingestion of a
	// known title is a deliberate no-op. A failed insert leaves no partial
	// state behind, so the document stays retryable.
	CreateWithChunks(ctx context.Context, course *CourseModel, chunks []*ChunkModel) (bool, error)
	Exists(ctx context.Context, title string) (bool, error)
	ListTitles(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

func ProvideCourseRepository(gormDB *gorm.DB) CourseRepository {
	return &courseRepository{db: gormDB}
}

func (r *courseRepository) CreateWithChunks(ctx context.Context, course *CourseModel, chunks []*ChunkModel) (bool, error) {
	exists, err := r.Exists(ctx, course.Title)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		return tx.Create(chunks).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *courseRepository) Exists(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CourseModel{}).
		Where("title = ?", title).
		Count(&count).Error
	return count > 0, err
}

func (r *courseRepository) ListTitles(ctx context.Context) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).
		Model(&CourseModel{}).
		Order("title").
		Pluck("title", &titles).Error
	return titles, err
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CourseModel{}).Count(&count).Error
	return count, err
}
