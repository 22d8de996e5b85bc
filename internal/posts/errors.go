package posts

import "errors"

var (
	// ErrConnectionPool means no connection could be acquired from the pool.
	ErrConnectionPool = errors.New("posts: failed to acquire database connection")
	// ErrNotFound means the lookup ran but matched no row.
	ErrNotFound = errors.New("posts: post not found")
	// ErrQuery covers every other execution or scan failure.
	ErrQuery = errors.New("posts: query failed")
	// ErrNoStorage means a post keeps its body under an object key but the
	// service was built without a storage backend.
	ErrNoStorage = errors.New("posts: post content is in object storage but no storage is configured")
)
