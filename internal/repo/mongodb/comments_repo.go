package mongodb

import (
	"context"

	"github.com/inkwell/blogapi/internal/domain/comment"
	"github.com/inkwell/blogapi/internal/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type CommentsRepo struct {
	coll *mongo.Collection
	obs  observability.DBObserver
}

func NewCommentsRepo(db *mongo.Database, obs observability.DBObserver) *CommentsRepo {
	if obs == nil {
		obs = observability.NopDB{}
	}
	return &CommentsRepo{coll: db.Collection(commentsCollection), obs: obs}
}

func (r *CommentsRepo) Create(ctx context.Context, c comment.Comment) error {
	return r.obs.ObserveDB("comments.create", func() error {
		_, err := r.coll.InsertOne(ctx, c)
		return err
	})
}

func (r *CommentsRepo) ListByPost(ctx context.Context, postID string) ([]comment.Comment, error) {
	out := make([]comment.Comment, 0)

	err := r.obs.ObserveDB("comments.list_by_post", func() error {
		cur, err := r.coll.Find(ctx, bson.M{"post": postID}, newestFirst())
		if err != nil {
			return err
		}
		return cur.All(ctx, &out)
	})

	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []comment.Comment{}
	}

	return out, nil
}
