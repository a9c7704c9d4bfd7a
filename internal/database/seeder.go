package database

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/service"
)

// SeedFacilities loads initial facilities from a JSON fixture. Runs only
// against an empty registry so restarts never duplicate data.
func SeedFacilities(ctx context.Context, facilities service.FacilityService, seedFile string, logger *zap.Logger) error {
	if seedFile == "" {
		return nil
	}

	existing, err := facilities.List(ctx, dto.ListFilters{ActiveOnly: boolPtr(false)})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("registry already populated, seeding skipped", zap.Int("count", len(existing)))
		return nil
	}

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return err
	}
	var seeds []dto.CreateFacilityRequest
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return err
	}

	created := 0
	for i := range seeds {
		if _, err := facilities.Create(ctx, &seeds[i]); err != nil {
			logger.Warn("failed to seed facility", zap.String("name", seeds[i].Name), zap.Error(err))
			continue
		}
		created++
	}
	logger.Info("facilities seeded", zap.Int("created", created), zap.Int("total", len(seeds)))
	return nil
}

func boolPtr(b bool) *bool { return &b }
