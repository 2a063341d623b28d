package services

import (
	"context"
	"errors"
	"fmt"

	"alfredoptarigan/job-project-generator/internal/models"
	"alfredoptarigan/job-project-generator/internal/repositories"
)

var ErrNotFound = errors.New("project not found")

type Retriever interface {
	Retrieve(ctx context.Context, id uint) (*models.Artifact, error)
}

type retriever struct {
	repo repositories.ArtifactRepository
}

func NewRetriever(repo repositories.ArtifactRepository) Retriever {
	return &retriever{repo: repo}
}

// Retrieve implements Retriever. Unknown ids yield ErrNotFound; it has no side effects.
func (r *retriever) Retrieve(ctx context.Context, id uint) (*models.Artifact, error) {
	artifact, err := r.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrArtifactNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return artifact, nil
}
