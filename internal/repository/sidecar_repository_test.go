package repository

import (
	"context"
	"testing"

	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/database"
	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
)

const repoTestDocumentID = "9b2c3d40-0c9d-4a7e-9a36-0000000000bb"

func cleanupTestSidecars(t *testing.T, db *database.Database) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Pool.Exec(ctx, `DELETE FROM document_sidecars WHERE tenant_id = $1`, repoTestTenantID)
	if err != nil {
		t.Errorf("Failed to clean up sidecars: %v", err)
	}
}

func sidecarFixture(state models.ReviewState) *models.DocumentSidecar {
	return &models.DocumentSidecar{
		SchemaVersion: 1,
		DocMeta: models.DocMeta{
			DocumentType: "betriebskostenabrechnung",
		},
		ReviewState: state,
	}
}

func TestSidecarInsert_VersionsIncrement(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	defer cleanupTestSidecars(t, db)

	repo := NewSidecarRepository(db)
	ctx := context.Background()

	v1, err := repo.Insert(ctx, repoTestTenantID, repoTestDocumentID, sidecarFixture(models.ReviewNeedsReview))
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if v1 != 1 {
		t.Errorf("Expected first version to be 1, got %d", v1)
	}

	v2, err := repo.Insert(ctx, repoTestTenantID, repoTestDocumentID, sidecarFixture(models.ReviewAutoAccepted))
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if v2 != 2 {
		t.Errorf("Expected second version to be 2, got %d", v2)
	}
}

func TestSidecarGetLatest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	defer cleanupTestSidecars(t, db)

	repo := NewSidecarRepository(db)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, repoTestTenantID, repoTestDocumentID, sidecarFixture(models.ReviewNeedsReview)); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if _, err := repo.Insert(ctx, repoTestTenantID, repoTestDocumentID, sidecarFixture(models.ReviewAutoAccepted)); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	sv, err := repo.GetLatest(ctx, repoTestTenantID, repoTestDocumentID)
	if err != nil {
		t.Fatalf("GetLatest returned error: %v", err)
	}
	if sv == nil {
		t.Fatal("Expected a sidecar version, got nil")
	}
	if sv.Version != 2 {
		t.Errorf("Expected latest version 2, got %d", sv.Version)
	}
	if sv.Sidecar.ReviewState != models.ReviewAutoAccepted {
		t.Errorf("Expected latest review state AUTO_ACCEPTED, got %s", sv.Sidecar.ReviewState)
	}
	if sv.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestSidecarGetLatest_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewSidecarRepository(db)

	sv, err := repo.GetLatest(context.Background(), repoTestTenantID, "9b2c3d40-0c9d-4a7e-9a36-0000000000ff")
	if err != nil {
		t.Fatalf("GetLatest returned error: %v", err)
	}
	if sv != nil {
		t.Errorf("Expected nil for unknown document, got version %d", sv.Version)
	}
}

func TestSidecarListByReviewState_LatestVersionOnly(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	defer cleanupTestSidecars(t, db)

	repo := NewSidecarRepository(db)
	ctx := context.Background()

	// A NEEDS_REVIEW version superseded by an AUTO_ACCEPTED one must not
	// appear in the review queue.
	if _, err := repo.Insert(ctx, repoTestTenantID, repoTestDocumentID, sidecarFixture(models.ReviewNeedsReview)); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if _, err := repo.Insert(ctx, repoTestTenantID, repoTestDocumentID, sidecarFixture(models.ReviewAutoAccepted)); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	queue, err := repo.ListByReviewState(ctx, repoTestTenantID, models.ReviewNeedsReview, 50)
	if err != nil {
		t.Fatalf("ListByReviewState returned error: %v", err)
	}
	for _, sv := range queue {
		if sv.DocumentID == repoTestDocumentID {
			t.Error("Expected superseded document not to appear in the review queue")
		}
	}

	accepted, err := repo.ListByReviewState(ctx, repoTestTenantID, models.ReviewAutoAccepted, 50)
	if err != nil {
		t.Fatalf("ListByReviewState returned error: %v", err)
	}
	found := false
	for _, sv := range accepted {
		if sv.DocumentID == repoTestDocumentID {
			found = true
			if sv.Version != 2 {
				t.Errorf("Expected latest version 2 in listing, got %d", sv.Version)
			}
		}
	}
	if !found {
		t.Error("Expected document in AUTO_ACCEPTED listing")
	}
}
