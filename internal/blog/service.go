package blog

import (
	"context"
	"fmt"

	"github.com/leaderturk/property-management/internal/storage"
	"github.com/leaderturk/property-management/pkg/db/models"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
)

const resource = "Blog post"

type Service struct {
	posts storage.BlogPostRepository
}

func NewService(posts storage.BlogPostRepository) (*Service, error) {
	if posts == nil {
		return nil, fmt.Errorf("blog post repository is required")
	}
	return &Service{posts: posts}, nil
}

// List returns all posts, or only published ones when publishedOnly is set.
func (s *Service) List(ctx context.Context, publishedOnly bool) ([]models.BlogPost, error) {
	var (
		list []models.BlogPost
		err  error
	)
	if publishedOnly {
		list, err = s.posts.ListPublished(ctx)
	} else {
		list, err = s.posts.List(ctx)
	}
	return list, storage.Translate(err, resource)
}

func (s *Service) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	bp, err := s.posts.GetByID(ctx, id)
	return bp, storage.Translate(err, resource)
}

func (s *Service) Create(ctx context.Context, in models.BlogPostInput) (*models.BlogPost, error) {
	bp, err := s.posts.Create(ctx, in)
	return bp, storage.Translate(err, resource)
}

func (s *Service) Update(ctx context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error) {
	bp, err := s.posts.Update(ctx, id, patch)
	return bp, storage.Translate(err, resource)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.posts.Delete(ctx, id)
	if err != nil {
		return storage.Translate(err, resource)
	}
	if !ok {
		return pkgerrors.NotFound(resource)
	}
	return nil
}
