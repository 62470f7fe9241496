package handlers

import (
	"net/http/httptest"
	"testing"

	"hypetown_backend/internal/domain"
	"hypetown_backend/internal/game"

	"github.com/gin-gonic/gin"
)

func TestGetUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := getUserID(c); ok {
		t.Fatal("expected no user_id in fresh context")
	}

	c.Set("user_id", int64(42))
	if uid, ok := getUserID(c); !ok || uid != 42 {
		t.Fatalf("uid = %d ok = %v, want 42", uid, ok)
	}

	// user_id из JWT-клейма приходит как float64
	c.Set("user_id", float64(7))
	if uid, ok := getUserID(c); !ok || uid != 7 {
		t.Fatalf("uid = %d ok = %v, want 7", uid, ok)
	}

	c.Set("user_id", "not a number")
	if _, ok := getUserID(c); ok {
		t.Fatal("string value must not resolve to a user id")
	}
}

func TestLevelProgressReportsNextThreshold(t *testing.T) {
	p := &domain.Player{Level: 2, XP: game.XPForLevel(2) + 10}

	lp := levelProgress(p)
	// порог именно следующего уровня, не текущего
	if lp["xp_for_next_level"] != game.XPForLevel(3) {
		t.Fatalf("xp_for_next_level = %v, want %d", lp["xp_for_next_level"], game.XPForLevel(3))
	}
	if lp["xp_to_next"] != game.XPForLevel(3)-p.XP {
		t.Fatalf("xp_to_next = %v, want %d", lp["xp_to_next"], game.XPForLevel(3)-p.XP)
	}
}
