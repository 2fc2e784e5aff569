package postgres

import (
	"context"

	"github.com/inkwell/blogapi/internal/domain/comment"
	"github.com/inkwell/blogapi/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentsRepo struct {
	pool *pgxpool.Pool
	obs  observability.DBObserver
}

func NewCommentsRepo(pool *pgxpool.Pool, obs observability.DBObserver) *CommentsRepo {
	if obs == nil {
		obs = observability.NopDB{}
	}
	return &CommentsRepo{pool: pool, obs: obs}
}

func (r *CommentsRepo) Create(ctx context.Context, c comment.Comment) error {
	return r.obs.ObserveDB("comments.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO comments (id, content, post_id, author_id, author_username, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			c.ID, c.Content, c.PostID, c.Author.ID, c.Author.Username, c.CreatedAt,
		)
		return err
	})
}

func (r *CommentsRepo) ListByPost(ctx context.Context, postID string) ([]comment.Comment, error) {
	out := make([]comment.Comment, 0)

	err := r.obs.ObserveDB("comments.list_by_post", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, content, post_id, author_id, author_username, created_at
			FROM comments
			WHERE post_id = $1
			ORDER BY created_at DESC, id DESC`,
			postID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c comment.Comment
			if err := rows.Scan(&c.ID, &c.Content, &c.PostID, &c.Author.ID, &c.Author.Username, &c.CreatedAt); err != nil {
				return err
			}
			out = append(out, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}
