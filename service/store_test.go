package service

import (
	"testing"
	"time"

	"github.com/eyad6789/Bill-to-OriginCertification/model"
)

func TestGenerationStoreSaveAndGet(t *testing.T) {
	store := NewGenerationStore(100)

	gen := &model.Generation{
		ID:        "test-id-1",
		Filename:  "bill.pdf",
		Source:    model.SourceBill,
		Status:    model.StatusCompleted,
		CreatedAt: time.Now(),
	}

	store.Save(gen)

	retrieved := store.Get("test-id-1")
	if retrieved == nil {
		t.Fatal("Expected to retrieve generation")
	}
	if retrieved.Filename != "bill.pdf" {
		t.Errorf("Expected filename bill.pdf, got %s", retrieved.Filename)
	}

	// Test Get non-existent
	if store.Get("non-existent") != nil {
		t.Error("Expected nil for non-existent generation")
	}
}

func TestGenerationStoreListNewestFirst(t *testing.T) {
	store := NewGenerationStore(100)

	base := time.Now()
	store.Save(&model.Generation{ID: "old", CreatedAt: base.Add(-time.Hour)})
	store.Save(&model.Generation{ID: "new", CreatedAt: base})
	store.Save(&model.Generation{ID: "middle", CreatedAt: base.Add(-time.Minute)})

	list := store.List()
	if len(list) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(list))
	}
	if list[0].ID != "new" || list[1].ID != "middle" || list[2].ID != "old" {
		t.Errorf("Unexpected order: %s, %s, %s", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestGenerationStoreDelete(t *testing.T) {
	store := NewGenerationStore(100)

	store.Save(&model.Generation{ID: "delete-me", CreatedAt: time.Now()})

	if store.Get("delete-me") == nil {
		t.Fatal("Expected generation to exist before delete")
	}

	store.Delete("delete-me")

	if store.Get("delete-me") != nil {
		t.Error("Expected generation to be deleted")
	}
}

func TestGenerationStoreAutoCleanup(t *testing.T) {
	store := NewGenerationStore(3)

	for i := 0; i < 5; i++ {
		store.Save(&model.Generation{
			ID:        string(rune('a' + i)),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
		time.Sleep(10 * time.Millisecond) // Ensure different timestamps
	}

	if store.Count() != 3 {
		t.Errorf("Expected 3 entries after cleanup, got %d", store.Count())
	}

	if store.Get("a") != nil {
		t.Error("Expected oldest entry 'a' to be removed")
	}
	if store.Get("b") != nil {
		t.Error("Expected second oldest entry 'b' to be removed")
	}
}

func TestGenerationStoreUnlimited(t *testing.T) {
	store := NewGenerationStore(0)

	for i := 0; i < 10; i++ {
		store.Save(&model.Generation{
			ID:        string(rune('a' + i)),
			CreatedAt: time.Now(),
		})
	}

	if store.Count() != 10 {
		t.Errorf("Expected 10 entries, got %d", store.Count())
	}
}

func TestGenerationStoreCount(t *testing.T) {
	store := NewGenerationStore(100)

	if store.Count() != 0 {
		t.Error("Expected 0 entries initially")
	}

	store.Save(&model.Generation{ID: "1", CreatedAt: time.Now()})
	store.Save(&model.Generation{ID: "2", CreatedAt: time.Now()})

	if store.Count() != 2 {
		t.Errorf("Expected 2 entries, got %d", store.Count())
	}
}
