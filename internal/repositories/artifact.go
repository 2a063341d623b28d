package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/job-project-generator/internal/models"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactRepository is an append-only store of generated artifacts.
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *models.Artifact) error
	FindByID(ctx context.Context, id uint) (*models.Artifact, error)
	Count(ctx context.Context) (int64, error)
}

type artifactRepository struct {
	db *gorm.DB
}

func NewArtifactRepository(db *gorm.DB) ArtifactRepository {
	return &artifactRepository{db: db}
}

// Create implements ArtifactRepository. The database assigns artifact.ID;
// the insert is a single statement, so it either commits fully or not at all.
func (r *artifactRepository) Create(ctx context.Context, artifact *models.Artifact) error {
	if artifact.ID != 0 {
		return fmt.Errorf("failed to create artifact: id already set to %d", artifact.ID)
	}
	if err := r.db.WithContext(ctx).Create(artifact).Error; err != nil {
		return fmt.Errorf("failed to create artifact: %w", err)
	}
	return nil
}

// FindByID implements ArtifactRepository.
func (r *artifactRepository) FindByID(ctx context.Context, id uint) (*models.Artifact, error) {
	var artifact models.Artifact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&artifact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("artifact %d: %w", id, ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("failed to find artifact: %w", err)
	}
	return &artifact, nil
}

// Count implements ArtifactRepository.
func (r *artifactRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Artifact{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count artifacts: %w", err)
	}
	return n, nil
}
