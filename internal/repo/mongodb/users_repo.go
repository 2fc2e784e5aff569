package mongodb

import (
	"context"
	"errors"

	"github.com/inkwell/blogapi/internal/domain/user"
	"github.com/inkwell/blogapi/internal/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type UsersRepo struct {
	coll *mongo.Collection
	obs  observability.DBObserver
}

func NewUsersRepo(db *mongo.Database, obs observability.DBObserver) *UsersRepo {
	if obs == nil {
		obs = observability.NopDB{}
	}
	return &UsersRepo{coll: db.Collection(usersCollection), obs: obs}
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) error {
	return r.obs.ObserveDB("users.create", func() error {
		_, err := r.coll.InsertOne(ctx, u)

		if mongo.IsDuplicateKeyError(err) {
			return user.ErrDuplicate
		}
		return err
	})
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, "users.get_by_email", bson.M{"email": email})
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.findOne(ctx, "users.get_by_id", bson.M{"_id": id})
}

func (r *UsersRepo) findOne(ctx context.Context, op string, filter bson.M) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB(op, func() error {
		return r.coll.FindOne(ctx, filter).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}
