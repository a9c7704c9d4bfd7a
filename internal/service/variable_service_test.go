package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/models"
	"facility-registry-api-server/internal/repository"
)

func setupVariableService(t *testing.T) (VariableService, *repository.Repository, primitive.ObjectID) {
	t.Helper()
	repo := newTestRepository()
	svc := NewVariableService(repo, testBounds, zap.NewNop())

	ctx := context.Background()
	facilityID, _ := repo.Facility.Insert(ctx, &models.GeoLocale{
		Name: "Host", Type: "warehouse", Region: "central",
		Coordinates: models.Coordinates{Lat: 18.4, Lng: -66.0}, IsActive: true,
	})
	boxID, _ := repo.Box.Insert(ctx, &models.FacilityBox{GeoLocaleID: facilityID, Title: "Info"})
	return svc, repo, boxID
}

func TestVariableService_Create_Success(t *testing.T) {
	svc, repo, boxID := setupVariableService(t)

	id, err := svc.Create(context.Background(), &dto.CreateVariableRequest{
		BoxID: boxID.Hex(), Key: "capacity", Label: "Capacity", Type: "number", Value: float64(1200),
		Unit: "pallets", UnitCategory: "storage",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	v, _ := repo.Variable.GetByID(context.Background(), id)
	if v.Unit != "pallets" {
		t.Errorf("unit = %q, want pallets", v.Unit)
	}
}

func TestVariableService_Create_UnknownBox(t *testing.T) {
	svc, _, _ := setupVariableService(t)

	_, err := svc.Create(context.Background(), &dto.CreateVariableRequest{
		BoxID: primitive.NewObjectID().Hex(), Key: "k", Label: "l", Type: "text",
	})
	if !errors.Is(err, ErrBoxNotFound) {
		t.Errorf("expected ErrBoxNotFound, got %v", err)
	}
}

func TestVariableService_Create_InvalidType(t *testing.T) {
	svc, _, boxID := setupVariableService(t)

	_, err := svc.Create(context.Background(), &dto.CreateVariableRequest{
		BoxID: boxID.Hex(), Key: "k", Label: "l", Type: "blob",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "type" {
		t.Errorf("expected ValidationError on type, got %v", err)
	}
}

func TestVariableService_Create_NestedWithValueRejected(t *testing.T) {
	svc, _, boxID := setupVariableService(t)

	_, err := svc.Create(context.Background(), &dto.CreateVariableRequest{
		BoxID: boxID.Hex(), Key: "group", Label: "Group", Type: "nested", Value: "oops",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "value" {
		t.Errorf("nested variables cannot carry a value, got %v", err)
	}
}

func TestVariableService_Create_ParentInDifferentBoxRejected(t *testing.T) {
	svc, repo, boxID := setupVariableService(t)
	ctx := context.Background()

	otherFacility, _ := repo.Facility.Insert(ctx, &models.GeoLocale{
		Name: "Other", Type: "port", Region: "north",
		Coordinates: models.Coordinates{Lat: 18.3, Lng: -66.1}, IsActive: true,
	})
	otherBox, _ := repo.Box.Insert(ctx, &models.FacilityBox{GeoLocaleID: otherFacility, Title: "Elsewhere"})
	foreignParent, _ := repo.Variable.Insert(ctx, &models.FacilityVariable{BoxID: otherBox, Key: "p", Label: "p", Type: "nested"})

	parentHex := foreignParent.Hex()
	_, err := svc.Create(ctx, &dto.CreateVariableRequest{
		BoxID: boxID.Hex(), Key: "child", Label: "Child", Type: "text",
		ParentVariableID: &parentHex,
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "parentVariableId" {
		t.Errorf("cross-box parent must be rejected, got %v", err)
	}
}

func TestVariableService_Update_SelfParentRejected(t *testing.T) {
	svc, repo, boxID := setupVariableService(t)
	ctx := context.Background()

	id, _ := repo.Variable.Insert(ctx, &models.FacilityVariable{BoxID: boxID, Key: "a", Label: "a", Type: "nested"})

	selfHex := id.Hex()
	_, err := svc.Update(ctx, id, &dto.UpdateVariableRequest{ParentVariableID: &selfHex})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "parentVariableId" {
		t.Errorf("self-reference must be rejected, got %v", err)
	}
}

func TestVariableService_Update_MultiHopCycleRejected(t *testing.T) {
	svc, repo, boxID := setupVariableService(t)
	ctx := context.Background()

	// a -> b -> c, then try to re-parent a under c: c's chain reaches a.
	aID, _ := repo.Variable.Insert(ctx, &models.FacilityVariable{BoxID: boxID, Key: "a", Label: "a", Type: "nested"})
	bID, _ := repo.Variable.Insert(ctx, &models.FacilityVariable{BoxID: boxID, Key: "b", Label: "b", Type: "nested", ParentVariableID: &aID})
	cID, _ := repo.Variable.Insert(ctx, &models.FacilityVariable{BoxID: boxID, Key: "c", Label: "c", Type: "nested", ParentVariableID: &bID})

	cHex := cID.Hex()
	_, err := svc.Update(ctx, aID, &dto.UpdateVariableRequest{ParentVariableID: &cHex})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "parentVariableId" {
		t.Errorf("multi-hop cycle must be rejected, got %v", err)
	}
}

func TestVariableService_Update_PartialPatch(t *testing.T) {
	svc, repo, boxID := setupVariableService(t)
	ctx := context.Background()

	id, _ := repo.Variable.Insert(ctx, &models.FacilityVariable{
		BoxID: boxID, Key: "phone", Label: "Phone", Type: "text", Value: "787-555-0100", SortOrder: 3,
	})

	label := "Phone Number"
	if _, err := svc.Update(ctx, id, &dto.UpdateVariableRequest{Label: &label}); err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	v, _ := repo.Variable.GetByID(ctx, id)
	if v.Label != "Phone Number" {
		t.Errorf("label not patched: %q", v.Label)
	}
	if v.Key != "phone" || v.SortOrder != 3 || v.Value != "787-555-0100" {
		t.Error("untouched fields must survive the patch")
	}
}

func TestVariableService_Create_CoordinatesValueValidated(t *testing.T) {
	svc, _, boxID := setupVariableService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateVariableRequest{
		BoxID: boxID.Hex(), Key: "gate", Label: "Gate", Type: "coordinates", Value: "18.4, -66.0",
	}); err != nil {
		t.Fatalf("in-bounds coordinates value should pass: %v", err)
	}

	_, err := svc.Create(ctx, &dto.CreateVariableRequest{
		BoxID: boxID.Hex(), Key: "gate2", Label: "Gate 2", Type: "coordinates", Value: "40.7, -74.0",
	})
	if err == nil {
		t.Fatal("out-of-bounds coordinates value must be rejected")
	}
}

func TestVariableService_Delete_CascadesArbitraryDepth(t *testing.T) {
	svc, repo, boxID := setupVariableService(t)
	ctx := context.Background()

	// Build a 30-deep chain plus a sibling branch off the root.
	rootID, _ := repo.Variable.Insert(ctx, &models.FacilityVariable{BoxID: boxID, Key: "root", Label: "root", Type: "nested"})
	parent := rootID
	for i := 0; i < 30; i++ {
		p := parent
		next, _ := repo.Variable.Insert(ctx, &models.FacilityVariable{BoxID: boxID, Key: "n", Label: "n", Type: "nested", ParentVariableID: &p})
		parent = next
	}
	branchParent := rootID
	repo.Variable.Insert(ctx, &models.FacilityVariable{BoxID: boxID, Key: "leaf", Label: "leaf", Type: "text", ParentVariableID: &branchParent})

	if _, err := svc.Delete(ctx, rootID); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	remaining, _ := repo.Variable.ListByBox(ctx, boxID)
	if len(remaining) != 0 {
		t.Errorf("cascade must remove descendants at any depth, %d left", len(remaining))
	}
}

func TestVariableService_GetByKey(t *testing.T) {
	svc, repo, boxID := setupVariableService(t)
	ctx := context.Background()

	repo.Variable.Insert(ctx, &models.FacilityVariable{BoxID: boxID, Key: "capacity", Label: "c", Type: "number", Value: 10})
	repo.Variable.Insert(ctx, &models.FacilityVariable{BoxID: boxID, Key: "phone", Label: "p", Type: "text", Value: "x"})

	vars, err := svc.GetByKey(ctx, "capacity")
	if err != nil {
		t.Fatalf("GetByKey should succeed: %v", err)
	}
	if len(vars) != 1 || vars[0].Key != "capacity" {
		t.Errorf("expected the capacity variable, got %v", vars)
	}
}
