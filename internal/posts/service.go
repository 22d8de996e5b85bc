package posts

import (
	"context"
	"fmt"
	"io"

	"github.com/jeremyjsx/blog/internal/storage"
)

type Service struct {
	repo    Repository
	storage storage.Storage
}

// NewService builds the read side of the blog. st may be nil when every post keeps
// its body in the database.
func NewService(repo Repository, st storage.Storage) *Service {
	return &Service{repo: repo, storage: st}
}

func (s *Service) RecentPosts(ctx context.Context, n int) ([]*Post, error) {
	return s.repo.SelectLastNPosts(ctx, n)
}

func (s *Service) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	post, err := s.repo.SelectPostWithSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post.S3Key == "" {
		return post, nil
	}

	body, err := s.loadContent(ctx, post.S3Key)
	if err != nil {
		return nil, err
	}
	post.Body = body
	return post, nil
}

func (s *Service) loadContent(ctx context.Context, key string) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("%w: key %q", ErrNoStorage, key)
	}
	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return "", fmt.Errorf("download from s3: %w", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read s3 object: %w", err)
	}
	return string(b), nil
}
