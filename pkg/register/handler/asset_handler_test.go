package handler

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/assetstore"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/problem"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/register/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore mocks the remote asset API for controller tests
type stubStore struct {
	assets    []models.Asset
	listErr   error
	created   []models.AssetPayload
	deleted   []string
	deleteErr error
}

func (s *stubStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	return s.assets, s.listErr
}
func (s *stubStore) CreateAsset(ctx context.Context, payload models.AssetPayload) error {
	s.created = append(s.created, payload)
	return nil
}
func (s *stubStore) DeleteAsset(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.deleteErr
}

type stubHistoryRepo struct {
	entries []models.History
}

func (s *stubHistoryRepo) GetHistory(ctx context.Context) ([]models.History, error) {
	return s.entries, nil
}
func (s *stubHistoryRepo) Save(ctx context.Context, entry *models.History) error {
	s.entries = append(s.entries, *entry)
	return nil
}
func (s *stubHistoryRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.entries)), nil
}

type stubHospitalRepo struct{}

func (stubHospitalRepo) GetHospitals(ctx context.Context) ([]models.Hospital, error) {
	return nil, nil
}
func (stubHospitalRepo) GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error) {
	return nil, nil
}
func (stubHospitalRepo) FindByName(ctx context.Context, name string) (*models.Hospital, error) {
	return nil, nil
}
func (stubHospitalRepo) Save(ctx context.Context, hospital *models.Hospital) error   { return nil }
func (stubHospitalRepo) Update(ctx context.Context, hospital *models.Hospital) error { return nil }
func (stubHospitalRepo) Delete(ctx context.Context, id uint) error                   { return nil }
func (stubHospitalRepo) Count(ctx context.Context) (int64, error)                    { return 0, nil }

func newController(t *testing.T, store *stubStore) *AssetsController {
	t.Helper()
	svc := services.NewAssetService(store, &stubHistoryRepo{}, stubHospitalRepo{}, t.TempDir())
	return NewAssetsController(svc)
}

func testContext(t *testing.T, method, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, target, nil)
	return ctx
}

func TestListAssets_Handler(t *testing.T) {
	now := time.Now()
	store := &stubStore{assets: []models.Asset{
		{ID: "a1", FirstName: "Jan", CreatedAt: now.Add(-time.Hour)},
		{ID: "a2", FirstName: "Jan", CreatedAt: now},
	}}
	ctrl := newController(t, store)

	ctx := testContext(t, "GET", "/assets")
	resp, err := ctrl.ListAssets(ctx, &models.ListAssetsParams{})
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "a2", resp[0].ID, "newest first")
}

func TestAssetHistory_Handler(t *testing.T) {
	store := &stubStore{assets: []models.Asset{
		{ID: "r", Version: 1},
		{ID: "a1", ParentID: "r", Version: 2},
	}}
	ctrl := newController(t, store)

	ctx := testContext(t, "GET", "/assets/history/a1")
	chain, err := ctrl.AssetHistory(ctx, &models.AssetParams{ID: "a1"})
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "r", chain[0].ID)
	assert.Equal(t, "a1", chain[1].ID)
}

func TestAssetHistory_Handler_NotFound(t *testing.T) {
	ctrl := newController(t, &stubStore{})

	ctx := testContext(t, "GET", "/assets/history/missing")
	_, err := ctrl.AssetHistory(ctx, &models.AssetParams{ID: "missing"})

	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestDeleteAsset_Handler(t *testing.T) {
	store := &stubStore{}
	ctrl := newController(t, store)

	ctx := testContext(t, "POST", "/asset_delete/a1")
	require.NoError(t, ctrl.DeleteAsset(ctx, &models.AssetParams{ID: "a1"}))
	assert.Equal(t, []string{"a1"}, store.deleted)
}

func TestDeleteAsset_Handler_Rejected(t *testing.T) {
	store := &stubStore{deleteErr: &assetstore.RejectedError{Status: 404, Body: "nieznane aktywo"}}
	ctrl := newController(t, store)

	ctx := testContext(t, "POST", "/asset_delete/ghost")
	err := ctrl.DeleteAsset(ctx, &models.AssetParams{ID: "ghost"})

	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.Status)
}
