package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/repository"
)

func setupBulkService() (BulkService, FacilityService, *repository.Repository) {
	repo := newTestRepository()
	facilities := NewFacilityService(repo, testBounds, zap.NewNop())
	bulk := NewBulkService(facilities, repo, testBounds, zap.NewNop())
	return bulk, facilities, repo
}

func validRow(name string) dto.BulkImportRow {
	return dto.BulkImportRow{Name: name, Type: "warehouse", Region: "central", Lat: 18.4, Lng: -66.0}
}

func TestBulkImport_PartitionsRows(t *testing.T) {
	bulk, facilities, _ := setupBulkService()
	ctx := context.Background()

	// Pre-existing facility to collide with.
	createTestFacility(t, facilities, "Existing Depot")

	result, err := bulk.Import(ctx, &dto.BulkImportRequest{Facilities: []dto.BulkImportRow{
		validRow("New Warehouse"),
		{Name: "Far North", Type: "port", Region: "north", Lat: 99, Lng: -66.0},
		validRow("existing depot"),
	}})
	if err != nil {
		t.Fatalf("Import should not fail as a whole: %v", err)
	}

	if len(result.Successful) != 1 || result.Successful[0].Name != "New Warehouse" {
		t.Errorf("successful = %+v, want just New Warehouse", result.Successful)
	}
	if result.Successful[0].Row != 1 || result.Successful[0].ID == "" {
		t.Errorf("successful row should carry 1-based row number and created ID: %+v", result.Successful[0])
	}
	if len(result.Failed) != 1 || result.Failed[0].Row != 2 {
		t.Fatalf("failed = %+v, want row 2", result.Failed)
	}
	if !strings.Contains(result.Failed[0].Error, "Latitude 99") {
		t.Errorf("failure message should name the bad latitude: %q", result.Failed[0].Error)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Row != 3 {
		t.Errorf("skipped = %+v, want row 3 (case-insensitive duplicate)", result.Skipped)
	}

	sum := result.Summary
	if sum.Total != 3 || sum.Successful != 1 || sum.Failed != 1 || sum.Skipped != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestBulkImport_DuplicateWithinBatch(t *testing.T) {
	bulk, _, _ := setupBulkService()

	result, err := bulk.Import(context.Background(), &dto.BulkImportRequest{Facilities: []dto.BulkImportRow{
		validRow("Twin Site"),
		validRow("twin site"),
	}})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(result.Successful) != 1 || len(result.Skipped) != 1 {
		t.Errorf("second occurrence in the same batch must be skipped: %+v", result.Summary)
	}
}

func TestBulkImport_DryRunCommitsNothing(t *testing.T) {
	bulk, _, repo := setupBulkService()
	ctx := context.Background()

	result, err := bulk.Import(ctx, &dto.BulkImportRequest{
		DryRun: true,
		Facilities: []dto.BulkImportRow{
			validRow("Preview A"),
			validRow("preview a"),
		},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !result.DryRun {
		t.Error("result must echo dryRun")
	}
	if len(result.Successful) != 1 || result.Successful[0].Status != "would be created" {
		t.Errorf("dry-run success rows carry the preview status: %+v", result.Successful)
	}
	if result.Successful[0].ID != "" {
		t.Error("dry-run rows must not carry a created ID")
	}
	if len(result.Skipped) != 1 {
		t.Error("dry-run still detects in-batch duplicates")
	}

	stored, _ := repo.Facility.List(ctx)
	if len(stored) != 0 {
		t.Errorf("dry-run must not write anything, found %d facilities", len(stored))
	}
}

func TestBulkImport_CommitErrorDowngradedToRowFailure(t *testing.T) {
	repo := newTestRepository()
	facilityRepo := repo.Facility.(*mockFacilityRepo)
	facilities := NewFacilityService(repo, testBounds, zap.NewNop())
	bulk := NewBulkService(facilities, repo, testBounds, zap.NewNop())

	facilityRepo.insertErr = errors.New("write concern violated")

	result, err := bulk.Import(context.Background(), &dto.BulkImportRequest{Facilities: []dto.BulkImportRow{
		validRow("Doomed"),
	}})
	if err != nil {
		t.Fatalf("a row-level commit error must not abort the batch: %v", err)
	}
	if len(result.Failed) != 1 || !strings.Contains(result.Failed[0].Error, "write concern") {
		t.Errorf("failed = %+v", result.Failed)
	}
}

func TestBulkImport_EmptyBatch(t *testing.T) {
	bulk, _, _ := setupBulkService()

	result, err := bulk.Import(context.Background(), &dto.BulkImportRequest{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Summary.Total != 0 {
		t.Errorf("summary = %+v", result.Summary)
	}
	if result.Successful == nil || result.Failed == nil || result.Skipped == nil {
		t.Error("partitions must be empty slices, not nil")
	}
}
