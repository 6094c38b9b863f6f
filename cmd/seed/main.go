package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/giftlink/config"
	"github.com/oksasatya/giftlink/internal/domain/entity"
	mongoinfra "github.com/oksasatya/giftlink/internal/infrastructure/mongodb"
	"github.com/oksasatya/giftlink/pkg/helpers"
)

func main() {
	giftsFile := flag.String("gifts", "db/gifts.json", "path to the gift fixture file")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongoinfra.NewClient(ctx, cfg.MongoURL, cfg.MongoTimeout)
	if err != nil {
		logger.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)

	if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
		logger.Fatalf("failed to ensure indexes: %v", err)
	}

	f, err := os.Open(*giftsFile)
	if err != nil {
		logger.Fatalf("open %s: %v", *giftsFile, err)
	}
	gifts, err := loadGifts(f)
	_ = f.Close()
	if err != nil {
		logger.Fatalf("parse %s: %v", *giftsFile, err)
	}

	n, err := mongoinfra.SeedGifts(ctx, db, gifts)
	if err != nil {
		logger.Fatalf("failed to seed gifts: %v", err)
	}
	if n == 0 {
		logger.Info("gifts collection not empty; skipped")
	} else {
		logger.Infof("seeded %d gifts", n)
	}

	email, password := "demo@giftlink.test", "password123"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		logger.Fatalf("failed to hash password: %v", err)
	}
	created, err := mongoinfra.UpsertUser(ctx, db, &entity.User{
		Email:     email,
		FirstName: "Demo",
		LastName:  "User",
		Password:  hash,
	})
	if err != nil {
		logger.Fatalf("failed to seed user: %v", err)
	}
	if created {
		fmt.Printf("seeded user: email=%s password=%s\n", email, password)
	} else {
		fmt.Printf("user %s already exists\n", email)
	}
}

// loadGifts decodes a JSON array of gifts, deriving age_years from age_days
// when only the latter is given.
func loadGifts(r io.Reader) ([]entity.Gift, error) {
	var gifts []entity.Gift
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&gifts); err != nil {
		return nil, err
	}
	for i := range gifts {
		g := &gifts[i]
		if g.Name == "" {
			return nil, fmt.Errorf("gift %d: name is required", i)
		}
		if g.AgeYears == 0 && g.AgeDays > 0 {
			g.AgeYears = float64(g.AgeDays*10/365) / 10
		}
		if g.DateAdded == 0 {
			g.DateAdded = time.Now().Unix()
		}
	}
	return gifts, nil
}
