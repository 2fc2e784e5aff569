package postgres

import (
	"context"
	"errors"

	"github.com/inkwell/blogapi/internal/domain/post"
	"github.com/inkwell/blogapi/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostsRepo struct {
	pool *pgxpool.Pool
	obs  observability.DBObserver
}

func NewPostsRepo(pool *pgxpool.Pool, obs observability.DBObserver) *PostsRepo {
	if obs == nil {
		obs = observability.NopDB{}
	}
	return &PostsRepo{pool: pool, obs: obs}
}

const postColumns = `id, title, content, author_id, author_username, created_at, updated_at`

func scanPost(row pgx.Row, p *post.Post) error {
	return row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.Author.ID,
		&p.Author.Username,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *PostsRepo) Create(ctx context.Context, p post.Post) error {
	return r.obs.ObserveDB("posts.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO posts (`+postColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			p.ID, p.Title, p.Content, p.Author.ID, p.Author.Username, p.CreatedAt, p.UpdatedAt,
		)
		return err
	})
}

func (r *PostsRepo) List(ctx context.Context) ([]post.Post, error) {
	out := make([]post.Post, 0)

	err := r.obs.ObserveDB("posts.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p post.Post
			if err := scanPost(rows, &p); err != nil {
				return err
			}
			out = append(out, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (post.Post, error) {
	var p post.Post

	err := r.obs.ObserveDB("posts.get_by_id", func() error {
		return scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id), &p)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, err
	}

	return p, nil
}

func (r *PostsRepo) Update(ctx context.Context, p post.Post) (post.Post, error) {
	var out post.Post

	err := r.obs.ObserveDB("posts.update", func() error {
		return scanPost(r.pool.QueryRow(ctx,
			`UPDATE posts
			SET title = $2,
				content = $3,
				updated_at = $4
			WHERE id = $1
			RETURNING `+postColumns,
			p.ID, p.Title, p.Content, p.UpdatedAt,
		), &out)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, err
	}

	return out, nil
}

func (r *PostsRepo) Delete(ctx context.Context, id string) error {
	return r.obs.ObserveDB("posts.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return post.ErrNotFound
		}
		return nil
	})
}
