package main

import (
	"context"
	"log"
	"os"

	"hypetown_backend/internal/db"
	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/repository"
)

func main() {
	// expects DATABASE_URL env var
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewPlayerRepository(pool)
	ctx := context.Background()

	tgID := int64(1234567890)

	existing, err := repo.GetByTgID(ctx, tgID)
	var p *domain.Player
	if err == nil {
		p = existing
		log.Printf("player already exists id=%d\n", p.ID)
	} else {
		p = &domain.Player{
			TgID:      tgID,
			Username:  "testplayer",
			Name:      "Тестер",
			Avatar:    "avatar_1",
			Archetype: domain.ArchetypeBlogger,
		}

		if err := repo.Create(ctx, p); err != nil {
			log.Fatalf("create player failed: %v", err)
		}

		log.Printf("player created id=%d\n", p.ID)
	}

	p2, err := repo.GetAggregate(ctx, p.ID)
	if err != nil {
		log.Fatalf("read back failed: %v", err)
	}

	log.Printf("player id=%d name=%s archetype=%s coins=%d tap_power=%d\n",
		p2.ID, p2.Name, p2.Archetype, p2.Coins, p2.TapPower)
}
