package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	selectLastNPosts = `SELECT id, slug, title, body, COALESCE(s3_key, ''), published_at
FROM posts
ORDER BY published_at DESC
LIMIT $1`

	selectPostWithSlug = `SELECT id, slug, title, body, COALESCE(s3_key, ''), published_at
FROM posts
WHERE slug = $1`
)

var _ Repository = (*postgresRepository)(nil)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository reads posts through the given pool. Any database/sql
// driver works as long as it accepts $N placeholders.
func NewPostgresRepository(sqlDB *sql.DB) Repository {
	return &postgresRepository{db: sqlDB}
}

func (r *postgresRepository) SelectLastNPosts(ctx context.Context, n int) ([]*Post, error) {
	if n <= 0 {
		return []*Post{}, nil
	}

	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, selectLastNPosts, n)
	if err != nil {
		return nil, fmt.Errorf("%w: select last %d posts: %w", ErrQuery, n, err)
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan post: %w", ErrQuery, err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate posts: %w", ErrQuery, err)
	}
	return posts, nil
}

func (r *postgresRepository) SelectPostWithSlug(ctx context.Context, slug string) (*Post, error) {
	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	post, err := scanPost(conn.QueryRowContext(ctx, selectPostWithSlug, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: slug %q", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("%w: select post %q: %w", ErrQuery, slug, err)
	}
	return post, nil
}

// conn checks a single connection out of the pool so acquisition failures can be
// told apart from query failures. Callers must Close it to hand it back.
func (r *postgresRepository) conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionPool, err)
	}
	return conn, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*Post, error) {
	var p Post
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.S3Key, &p.PublishedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
