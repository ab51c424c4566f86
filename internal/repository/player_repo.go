package repository

import (
	"context"

	"playercare/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlayerRepo is the read-only profile store the engines consume. Upsert
// exists only for seeding.
type PlayerRepo interface {
	GetByID(ctx context.Context, id string) (*model.PlayerProfile, error)
	Upsert(ctx context.Context, profile *model.PlayerProfile) error
}

type playerRepo struct {
	collection *mongo.Collection
}

func NewPlayerRepo(db *mongo.Database) PlayerRepo {
	return &playerRepo{
		collection: db.Collection("players"),
	}
}

func (r *playerRepo) GetByID(ctx context.Context, id string) (*model.PlayerProfile, error) {
	var profile model.PlayerProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Player not found
		}
		return nil, err
	}
	return &profile, nil
}

func (r *playerRepo) Upsert(ctx context.Context, profile *model.PlayerProfile) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile, opts)
	return err
}
