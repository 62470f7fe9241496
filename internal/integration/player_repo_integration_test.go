package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func TestPlayerRepository_CreateAndLockAggregate(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer db.Close()

	applyMigrations(t, db)

	ctx := context.Background()
	players := repository.NewPlayerRepository(db)
	buildings := repository.NewBuildingRepository(db)

	p := &domain.Player{
		TgID:      900000001,
		Username:  "itest",
		Name:      "Интеграционный",
		Archetype: domain.ArchetypeDirector,
	}
	if err := players.Create(ctx, p); err != nil {
		t.Fatalf("create player: %v", err)
	}
	defer func() {
		_, _ = db.Exec(ctx, `DELETE FROM players WHERE id = $1`, p.ID)
	}()

	if p.Coins == 0 || p.TapPower == 0 {
		t.Fatalf("start values not applied: coins=%d tap_power=%d", p.Coins, p.TapPower)
	}

	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	b := &domain.Building{
		PlayerID: p.ID,
		Type:     domain.BuildingSeriesLot,
		Level:    1,
	}
	if err := buildings.InsertTx(ctx, tx, b); err != nil {
		t.Fatalf("insert building: %v", err)
	}
	if b.ID == 0 {
		t.Fatal("building id not assigned")
	}

	loaded, err := players.LockAggregateTx(ctx, tx, p.ID)
	if err != nil {
		t.Fatalf("lock aggregate: %v", err)
	}
	if len(loaded.Buildings) != 1 || loaded.Buildings[0].Type != domain.BuildingSeriesLot {
		t.Fatalf("aggregate buildings mismatch: %+v", loaded.Buildings)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
}
