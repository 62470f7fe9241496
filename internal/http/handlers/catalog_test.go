package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func catalogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{}
	r := gin.New()
	r.GET("/catalog/buildings", h.CatalogBuildings)
	r.GET("/catalog/archetypes", h.CatalogArchetypes)
	r.GET("/catalog/upgrades", h.CatalogUpgrades)
	return r
}

func TestCatalogBuildings(t *testing.T) {
	r := catalogRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/catalog/buildings", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Buildings []struct {
			Type        string `json:"type"`
			Cost        int64  `json:"cost"`
			UnlockLevel int    `json:"unlock_level"`
			Resource    string `json:"resource"`
		} `json:"buildings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if len(resp.Buildings) != 9 {
		t.Fatalf("expected 9 buildings, got %d", len(resp.Buildings))
	}
	// список отсортирован по уровню открытия
	for i := 1; i < len(resp.Buildings); i++ {
		if resp.Buildings[i].UnlockLevel < resp.Buildings[i-1].UnlockLevel {
			t.Fatalf("buildings not ordered by unlock level at %d", i)
		}
	}
	for _, b := range resp.Buildings {
		if b.Resource == "" {
			t.Fatalf("building %s has no resource", b.Type)
		}
	}
}

func TestCatalogArchetypes(t *testing.T) {
	r := catalogRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/catalog/archetypes", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Archetypes map[string]struct {
			BonusType string  `json:"bonus_type"`
			Bonus     float64 `json:"bonus"`
		} `json:"archetypes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if len(resp.Archetypes) != 6 {
		t.Fatalf("expected 6 archetypes, got %d", len(resp.Archetypes))
	}
	if a, ok := resp.Archetypes["blogger"]; !ok || a.BonusType != "clicker" || a.Bonus != 0.20 {
		t.Fatalf("blogger archetype wrong: %+v", resp.Archetypes["blogger"])
	}
}

func TestCatalogUpgrades(t *testing.T) {
	r := catalogRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/catalog/upgrades", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Upgrades []struct {
			Type     string `json:"type"`
			BaseCost int64  `json:"base_cost"`
		} `json:"upgrades"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if len(resp.Upgrades) != 8 {
		t.Fatalf("expected 8 upgrades, got %d", len(resp.Upgrades))
	}
	if resp.Upgrades[0].Type != "smartphone" || resp.Upgrades[0].BaseCost != 50 {
		t.Fatalf("first upgrade should be smartphone/50, got %+v", resp.Upgrades[0])
	}
}
