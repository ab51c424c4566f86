package repository

import (
	"context"

	"playercare/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TicketRepo interface {
	Create(ctx context.Context, ticket *model.SupportTicket) error
	GetByTicketID(ctx context.Context, ticketID string) (*model.SupportTicket, error)
	ListByPlayer(ctx context.Context, playerID string, limit int64) ([]model.SupportTicket, error)
}

type ticketRepo struct {
	collection *mongo.Collection
}

func NewTicketRepo(db *mongo.Database) TicketRepo {
	return &ticketRepo{
		collection: db.Collection("tickets"),
	}
}

func (r *ticketRepo) Create(ctx context.Context, ticket *model.SupportTicket) error {
	if ticket.ID == "" {
		ticket.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, ticket)
	return err
}

func (r *ticketRepo) GetByTicketID(ctx context.Context, ticketID string) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	err := r.collection.FindOne(ctx, bson.M{"ticketId": ticketID}).Decode(&ticket)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Ticket not found
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepo) ListByPlayer(ctx context.Context, playerID string, limit int64) ([]model.SupportTicket, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []model.SupportTicket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}
