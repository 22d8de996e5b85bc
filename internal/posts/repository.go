package posts

import "context"

type Repository interface {
	SelectLastNPosts(ctx context.Context, n int) ([]*Post, error)
	SelectPostWithSlug(ctx context.Context, slug string) (*Post, error)
}
