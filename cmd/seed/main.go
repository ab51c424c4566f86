package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"playercare/internal/model"
	"playercare/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("playercare")
	players := repository.NewPlayerRepo(db)

	profiles := []model.PlayerProfile{
		{
			ID:          "player_f2p_001",
			Name:        "CasualKnight",
			Level:       12,
			VIPLevel:    0,
			TotalSpend:  0,
			ChurnRisk:   model.ChurnLow,
			SessionDays: 45,
			Kingdom:     "K12",
		},
		{
			ID:          "player_light_002",
			Name:        "IronFalcon",
			Level:       28,
			VIPLevel:    2,
			TotalSpend:  29.99,
			ChurnRisk:   model.ChurnMedium,
			Spender:     true,
			SessionDays: 120,
			Kingdom:     "K12",
			Alliance:    "NightWatch",
		},
		{
			ID:          "player_whale_003",
			Name:        "DragonLord88",
			Level:       55,
			VIPLevel:    11,
			TotalSpend:  1450.50,
			ChurnRisk:   model.ChurnHigh,
			Spender:     true,
			SessionDays: 300,
			Kingdom:     "K3",
			Alliance:    "CrimsonPact",
		},
		{
			// Flagged profile: account-access issues require verification
			ID:          "player_flagged_004",
			Name:        "ShadowReaper",
			Level:       41,
			VIPLevel:    7,
			TotalSpend:  620.00,
			ChurnRisk:   model.ChurnMedium,
			Spender:     true,
			SessionDays: 210,
			Kingdom:     "K7",
			Flagged:     true,
		},
		{
			ID:          "player_vipwhale_005",
			Name:        "EmpressValkyrie",
			Level:       60,
			VIPLevel:    15,
			TotalSpend:  8200.00,
			ChurnRisk:   model.ChurnLow,
			Spender:     true,
			SessionDays: 500,
			Kingdom:     "K1",
			Alliance:    "GoldenHorde",
		},
	}

	for i := range profiles {
		if err := players.Upsert(ctx, &profiles[i]); err != nil {
			log.Fatalf("Failed to seed player %s: %v", profiles[i].ID, err)
		}
		fmt.Printf("Seeded player %s (%s)\n", profiles[i].ID, profiles[i].Name)
	}

	fmt.Printf("Seeded %d player profiles\n", len(profiles))
}
