package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"facility-registry-api-server/internal/models"
	"facility-registry-api-server/internal/repository"
)

// In-memory repositories for exercising the services without a database.

type mockFacilityRepo struct {
	facilities map[string]*models.GeoLocale
	insertErr  error
}

func newMockFacilityRepo() *mockFacilityRepo {
	return &mockFacilityRepo{facilities: make(map[string]*models.GeoLocale)}
}

func (m *mockFacilityRepo) Insert(_ context.Context, loc *models.GeoLocale) (primitive.ObjectID, error) {
	if m.insertErr != nil {
		return primitive.NilObjectID, m.insertErr
	}
	loc.ID = primitive.NewObjectID()
	now := time.Now()
	loc.CreatedAt = now
	loc.UpdatedAt = now
	cp := *loc
	m.facilities[loc.ID.Hex()] = &cp
	return loc.ID, nil
}

func (m *mockFacilityRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.GeoLocale, error) {
	loc, ok := m.facilities[id.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *loc
	return &cp, nil
}

func (m *mockFacilityRepo) List(_ context.Context) ([]models.GeoLocale, error) {
	out := make([]models.GeoLocale, 0, len(m.facilities))
	for _, loc := range m.facilities {
		out = append(out, *loc)
	}
	return out, nil
}

func (m *mockFacilityRepo) Update(_ context.Context, loc *models.GeoLocale) error {
	if _, ok := m.facilities[loc.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	loc.UpdatedAt = time.Now()
	cp := *loc
	m.facilities[loc.ID.Hex()] = &cp
	return nil
}

func (m *mockFacilityRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(m.facilities, id.Hex())
	return nil
}

type mockBoxRepo struct {
	boxes map[string]*models.FacilityBox
}

func newMockBoxRepo() *mockBoxRepo {
	return &mockBoxRepo{boxes: make(map[string]*models.FacilityBox)}
}

func (m *mockBoxRepo) Insert(_ context.Context, box *models.FacilityBox) (primitive.ObjectID, error) {
	box.ID = primitive.NewObjectID()
	cp := *box
	m.boxes[box.ID.Hex()] = &cp
	return box.ID, nil
}

func (m *mockBoxRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.FacilityBox, error) {
	box, ok := m.boxes[id.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *box
	return &cp, nil
}

func (m *mockBoxRepo) ListByFacility(_ context.Context, geoLocaleID primitive.ObjectID) ([]models.FacilityBox, error) {
	out := []models.FacilityBox{}
	for _, box := range m.boxes {
		if box.GeoLocaleID == geoLocaleID {
			out = append(out, *box)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *mockBoxRepo) Update(_ context.Context, box *models.FacilityBox) error {
	if _, ok := m.boxes[box.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	cp := *box
	m.boxes[box.ID.Hex()] = &cp
	return nil
}

func (m *mockBoxRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(m.boxes, id.Hex())
	return nil
}

type mockVariableRepo struct {
	variables map[string]*models.FacilityVariable
}

func newMockVariableRepo() *mockVariableRepo {
	return &mockVariableRepo{variables: make(map[string]*models.FacilityVariable)}
}

func (m *mockVariableRepo) Insert(_ context.Context, v *models.FacilityVariable) (primitive.ObjectID, error) {
	v.ID = primitive.NewObjectID()
	cp := *v
	m.variables[v.ID.Hex()] = &cp
	return v.ID, nil
}

func (m *mockVariableRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.FacilityVariable, error) {
	v, ok := m.variables[id.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *mockVariableRepo) ListByBox(_ context.Context, boxID primitive.ObjectID) ([]models.FacilityVariable, error) {
	out := []models.FacilityVariable{}
	for _, v := range m.variables {
		if v.BoxID == boxID {
			out = append(out, *v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *mockVariableRepo) ListByKey(_ context.Context, key string) ([]models.FacilityVariable, error) {
	out := []models.FacilityVariable{}
	for _, v := range m.variables {
		if v.Key == key {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVariableRepo) ListByParent(_ context.Context, parentID primitive.ObjectID) ([]models.FacilityVariable, error) {
	out := []models.FacilityVariable{}
	for _, v := range m.variables {
		if v.ParentVariableID != nil && *v.ParentVariableID == parentID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVariableRepo) Update(_ context.Context, v *models.FacilityVariable) error {
	if _, ok := m.variables[v.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	cp := *v
	m.variables[v.ID.Hex()] = &cp
	return nil
}

func (m *mockVariableRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(m.variables, id.Hex())
	return nil
}

type mockSessionRepo struct {
	sessions map[string]*models.AdminSession
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*models.AdminSession)}
}

func (m *mockSessionRepo) Insert(_ context.Context, s *models.AdminSession) (primitive.ObjectID, error) {
	s.ID = primitive.NewObjectID()
	cp := *s
	m.sessions[s.ID.Hex()] = &cp
	return s.ID, nil
}

func (m *mockSessionRepo) GetByToken(_ context.Context, token string) (*models.AdminSession, error) {
	for _, s := range m.sessions {
		if s.Token == token {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockSessionRepo) ListByUser(_ context.Context, userID string) ([]models.AdminSession, error) {
	out := []models.AdminSession{}
	for _, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSessionRepo) List(_ context.Context) ([]models.AdminSession, error) {
	out := []models.AdminSession{}
	for _, s := range m.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSessionRepo) UpdateExpiry(_ context.Context, id primitive.ObjectID, expiresAt time.Time) error {
	s, ok := m.sessions[id.Hex()]
	if !ok {
		return repository.ErrNotFound
	}
	s.ExpiresAt = expiresAt
	return nil
}

func (m *mockSessionRepo) DeleteByToken(_ context.Context, token string) error {
	for id, s := range m.sessions {
		if s.Token == token {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, s := range m.sessions {
		if !s.ExpiresAt.After(now) {
			delete(m.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func newTestRepository() *repository.Repository {
	return &repository.Repository{
		Facility: newMockFacilityRepo(),
		Box:      newMockBoxRepo(),
		Variable: newMockVariableRepo(),
		Session:  newMockSessionRepo(),
	}
}
