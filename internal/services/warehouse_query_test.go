package services

import (
	"strings"
	"testing"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// buildListSQL renders the store query for a filter in dry-run mode, so the
// generated SQL can be inspected without a database.
func buildListSQL(t *testing.T, f WarehouseFilter) string {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run session: %v", err)
	}

	var rows []models.Warehouse
	tx := applyStoreFilters(db.Model(&models.Warehouse{}), f).Find(&rows)
	if tx.Error != nil {
		t.Fatalf("build query: %v", tx.Error)
	}
	return tx.Statement.SQL.String()
}

func TestStoreQueryAlwaysScopedToVisible(t *testing.T) {
	if sql := buildListSQL(t, WarehouseFilter{}); !strings.Contains(sql, "is_visible = ?") {
		t.Errorf("unfiltered query lost the visibility predicate: %s", sql)
	}

	filtered := ParseWarehouseFilter(map[string][]string{
		"city":      {"Pune,Mumbai"},
		"address":   {"MIDC"},
		"minBudget": {"10"},
	})
	if sql := buildListSQL(t, filtered); !strings.Contains(sql, "is_visible = ?") {
		t.Errorf("filtered query lost the visibility predicate: %s", sql)
	}
}

func TestStoreQueryFireNocUsesAmenitySubquery(t *testing.T) {
	noc := true
	sql := buildListSQL(t, WarehouseFilter{FireNocAvailable: &noc})
	if !strings.Contains(sql, "warehouse_amenities") {
		t.Errorf("fire NOC filter must consult the amenity table: %s", sql)
	}
	if !strings.Contains(sql, "is_visible = ?") {
		t.Errorf("fire NOC filter must not displace the visibility predicate: %s", sql)
	}
}
