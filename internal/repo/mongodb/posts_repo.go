package mongodb

import (
	"context"
	"errors"

	"github.com/inkwell/blogapi/internal/domain/post"
	"github.com/inkwell/blogapi/internal/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type PostsRepo struct {
	coll *mongo.Collection
	obs  observability.DBObserver
}

func NewPostsRepo(db *mongo.Database, obs observability.DBObserver) *PostsRepo {
	if obs == nil {
		obs = observability.NopDB{}
	}
	return &PostsRepo{coll: db.Collection(postsCollection), obs: obs}
}

func (r *PostsRepo) Create(ctx context.Context, p post.Post) error {
	return r.obs.ObserveDB("posts.create", func() error {
		_, err := r.coll.InsertOne(ctx, p)
		return err
	})
}

func (r *PostsRepo) List(ctx context.Context) ([]post.Post, error) {
	out := make([]post.Post, 0)

	err := r.obs.ObserveDB("posts.list", func() error {
		cur, err := r.coll.Find(ctx, bson.M{}, newestFirst())
		if err != nil {
			return err
		}
		return cur.All(ctx, &out)
	})

	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []post.Post{}
	}

	return out, nil
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (post.Post, error) {
	var p post.Post

	err := r.obs.ObserveDB("posts.get_by_id", func() error {
		return r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, err
	}

	return p, nil
}

// Update replaces the whole document; the caller has already merged the
// partial update onto the stored post.
func (r *PostsRepo) Update(ctx context.Context, p post.Post) (post.Post, error) {
	err := r.obs.ObserveDB("posts.update", func() error {
		res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return post.ErrNotFound
		}
		return nil
	})

	if err != nil {
		return post.Post{}, err
	}

	return p, nil
}

func (r *PostsRepo) Delete(ctx context.Context, id string) error {
	return r.obs.ObserveDB("posts.delete", func() error {
		res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return post.ErrNotFound
		}
		return nil
	})
}
