package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jeremyjsx/blog/internal/posts"
	"github.com/jeremyjsx/blog/internal/views"
	"github.com/jeremyjsx/blog/internal/worker"
)

// RecentPostsLimit is how many posts the blog page lists.
const RecentPostsLimit = 10

type Renderer interface {
	Render(name string, data views.Context) (string, error)
}

type BlogHandler struct {
	svc    *posts.Service
	views  Renderer
	pool   *worker.Pool
	logger *slog.Logger
}

func NewBlogHandler(svc *posts.Service, r Renderer, pool *worker.Pool, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		svc:    svc,
		views:  r,
		pool:   pool,
		logger: logger,
	}
}

// Register mounts the page routes on mux.
func (h *BlogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index())
	mux.HandleFunc("GET /blog", h.Blog())
	mux.HandleFunc("GET /blog/{slug}", h.Post())
	mux.HandleFunc("GET /hireme", h.HireMe())
}

func (h *BlogHandler) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, "index", views.NewContext())
	}
}

func (h *BlogHandler) Blog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		recent, err := worker.Run(ctx, h.pool, func(ctx context.Context) ([]*posts.Post, error) {
			return h.svc.RecentPosts(ctx, RecentPostsLimit)
		})
		if err != nil {
			// The list query has no not-found case; every failure is internal.
			h.logDataError(ctx, err)
			writeServerError(w, InternalError)
			return
		}

		data := views.NewContext()
		data.Insert("posts", recent)
		h.render(w, r, "blog", data)
	}
}

func (h *BlogHandler) Post() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		slug := r.PathValue("slug")

		post, err := worker.Run(ctx, h.pool, func(ctx context.Context) (*posts.Post, error) {
			return h.svc.PostBySlug(ctx, slug)
		})
		if err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				h.logger.InfoContext(ctx, "post not found", "slug", slug)
				writeServerError(w, PostNotFound)
				return
			}
			h.logDataError(ctx, err, "slug", slug)
			writeServerError(w, InternalError)
			return
		}

		data := views.NewContext()
		data.Insert("post", post)
		h.render(w, r, "post", data)
	}
}

func (h *BlogHandler) HireMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, "hireme", views.NewContext())
	}
}

func (h *BlogHandler) render(w http.ResponseWriter, r *http.Request, name string, data views.Context) {
	body, err := h.views.Render(name, data)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render template", "template", name, "error", err)
		writeServerError(w, InternalError)
		return
	}
	writeHTML(w, http.StatusOK, body)
}

func (h *BlogHandler) logDataError(ctx context.Context, err error, args ...any) {
	args = append(args, "error", err)
	switch {
	case errors.Is(err, context.Canceled):
		h.logger.WarnContext(ctx, "request cancelled", args...)
	case errors.Is(err, worker.ErrDispatch):
		h.logger.ErrorContext(ctx, "blocking task failed", args...)
	case errors.Is(err, posts.ErrConnectionPool):
		h.logger.ErrorContext(ctx, "error with connection pool", args...)
	default:
		h.logger.ErrorContext(ctx, "database error", args...)
	}
}
