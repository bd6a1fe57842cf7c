package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/assetstore"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/problem"
	"github.com/medregister-pl/asset-register/pkg/register/lineage"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/register/repositories"
	"github.com/teris-io/shortid"
)

// AssetStore is the remote asset API surface the service depends on.
type AssetStore interface {
	ListAssets(ctx context.Context) ([]models.Asset, error)
	CreateAsset(ctx context.Context, payload models.AssetPayload) error
	DeleteAsset(ctx context.Context, id string) error
}

// AssetService covers everything that touches the remote asset set: listing,
// history resolution, deletion and the CSV upload pipeline.
type AssetService struct {
	store      AssetStore
	history    repositories.HistoryRepository
	hospitals  repositories.HospitalRepository
	uploadsDir string
}

func NewAssetService(store AssetStore, history repositories.HistoryRepository, hospitals repositories.HospitalRepository, uploadsDir string) *AssetService {
	return &AssetService{store: store, history: history, hospitals: hospitals, uploadsDir: uploadsDir}
}

// ListAssets fetches the live asset set, applies the filters and sorts by
// creation time, newest first.
func (s *AssetService) ListAssets(ctx context.Context, p *models.ListAssetsParams) ([]models.Asset, error) {
	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return nil, problem.NewUpstreamUnavailable("Serwis aktywów jest niedostępny, spróbuj ponownie później")
	}

	filtered := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if a.IsDeleted && !p.IncludeDeleted {
			continue
		}
		if !matchFold(a.FirstName, p.FirstName) ||
			!matchFold(a.LastName, p.LastName) ||
			!matchFold(a.Hospital, p.Hospital) {
			continue
		}
		filtered = append(filtered, a)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

func matchFold(value string, filter *string) bool {
	if filter == nil || strings.TrimSpace(*filter) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(strings.TrimSpace(*filter)))
}

// AssetHistory resolves the version chain of one asset, oldest first. A
// failed remote fetch is an internal error here, an unknown id a 404.
func (s *AssetService) AssetHistory(ctx context.Context, id string) ([]models.Asset, error) {
	assets, err := s.store.ListAssets(ctx)
	if err != nil {
		return nil, problem.NewInternalServerError(fmt.Sprintf("nie można pobrać aktywów: %v", err))
	}

	chain, err := lineage.Resolve(id, assets)
	if errors.Is(err, lineage.ErrNotFound) {
		return nil, problem.NewNotFound(id, "Nie znaleziono aktywa o podanym identyfikatorze")
	}
	if err != nil {
		return nil, err
	}
	if lineage.Broken(chain) {
		log.Printf("[WARN] asset %s: version chain broken at parent %s", id, chain[0].ParentID)
	}
	return chain, nil
}

// DeleteAsset forwards a delete to the remote service.
func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	err := s.store.DeleteAsset(ctx, id)
	var rejected *assetstore.RejectedError
	if errors.As(err, &rejected) {
		return problem.NewUpstreamRejected(id, rejected.Body)
	}
	if err != nil {
		return problem.NewUpstreamUnavailable("Serwis aktywów jest niedostępny, spróbuj ponownie później")
	}
	return nil
}

// Uploads returns the local audit trail, newest first.
func (s *AssetService) Uploads(ctx context.Context) ([]models.History, error) {
	return s.history.GetHistory(ctx)
}

// Upload is one CSV submission: either a brand-new asset or a new version of
// an existing one.
type Upload struct {
	Filename    string
	Description string
	Columns     []string
	Rows        []models.AssetRow
	Raw         []byte
	// TargetID, when set, makes this upload a new version of that asset.
	TargetID string
}

// SubmitUpload runs the upload pipeline for the authenticated identity.
//
// New asset: every CSV row becomes an independent record with Version 1 and
// no parent. New version: the whole CSV becomes a single record whose parent
// is the target and whose number is derived from the fetched target record.
// The first non-accepted create aborts the rest; rows already accepted
// upstream stay accepted.
func (s *AssetService) SubmitUpload(ctx context.Context, ident models.Identity, up Upload) error {
	if len(up.Rows) == 0 {
		return problem.NewBadRequest("file", "Plik CSV nie zawiera żadnych wierszy danych")
	}

	if up.TargetID == "" {
		for _, row := range up.Rows {
			payload := s.newPayload(ident, up.Description)
			payload.Version = 1
			payload.Data = []models.AssetRow{row}
			if err := s.create(ctx, payload); err != nil {
				return err
			}
		}
	} else {
		assets, err := s.store.ListAssets(ctx)
		if err != nil {
			return problem.NewUpstreamUnavailable("Serwis aktywów jest niedostępny, spróbuj ponownie później")
		}
		target, ok := findAsset(assets, up.TargetID)
		if !ok {
			return problem.NewNotFound(up.TargetID, "Nie znaleziono aktywa o podanym identyfikatorze")
		}

		payload := s.newPayload(ident, up.Description)
		payload.ParentID = target.ID
		payload.Version = target.Version + 1
		payload.Data = up.Rows
		if err := s.create(ctx, payload); err != nil {
			return err
		}
	}

	return s.recordUpload(ctx, ident, up)
}

func (s *AssetService) create(ctx context.Context, payload models.AssetPayload) error {
	err := s.store.CreateAsset(ctx, payload)
	var rejected *assetstore.RejectedError
	if errors.As(err, &rejected) {
		return problem.NewUpstreamRejected(payload.ID, rejected.Body)
	}
	if err != nil {
		return problem.NewUpstreamUnavailable("Serwis aktywów jest niedostępny, spróbuj ponownie później")
	}
	return nil
}

func (s *AssetService) newPayload(ident models.Identity, description string) models.AssetPayload {
	return models.AssetPayload{
		ID:          newAssetID(ident.UserID),
		UserID:      fmt.Sprint(ident.UserID),
		FirstName:   ident.FirstName,
		LastName:    ident.LastName,
		Hospital:    ident.Hospital,
		Description: description,
	}
}

// newAssetID composes timestamp + user id + random digits, unique enough for
// the remote service which never validates collisions.
func newAssetID(userID uint) string {
	return fmt.Sprintf("%s%d%04d", time.Now().Format("20060102150405"), userID, rand.Intn(10000))
}

// recordUpload is the local bookkeeping: the raw file lands in the uploads
// dir and an audit row goes into History.
func (s *AssetService) recordUpload(ctx context.Context, ident models.Identity, up Upload) error {
	stored := fmt.Sprintf("%s_%s_%s",
		time.Now().Format("20060102150405"),
		shortid.MustGenerate(),
		sanitizeFilename(up.Filename),
	)
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return problem.NewInternalServerError(fmt.Sprintf("nie można utworzyć katalogu na pliki: %v", err))
	}
	if err := os.WriteFile(filepath.Join(s.uploadsDir, stored), up.Raw, 0o644); err != nil {
		return problem.NewInternalServerError(fmt.Sprintf("nie można zapisać pliku: %v", err))
	}

	// The identity carries the hospital name only; resolve it back to the
	// local record for the FK. A stale name just leaves the FK empty.
	var hospitalID *uint
	if ident.Hospital != "" {
		if hospital, err := s.hospitals.FindByName(ctx, ident.Hospital); err == nil && hospital != nil {
			hospitalID = &hospital.ID
		}
	}
	entry := &models.History{
		ID:         uuid.NewString(),
		UserID:     ident.UserID,
		Filename:   stored,
		Date:       time.Now(),
		Columns:    up.Columns,
		HospitalID: hospitalID,
	}
	if err := s.history.Save(ctx, entry); err != nil {
		return problem.NewInternalServerError(fmt.Sprintf("nie można zapisać historii: %v", err))
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." {
		name = "upload.csv"
	}
	return name
}

func findAsset(assets []models.Asset, id string) (models.Asset, bool) {
	for _, a := range assets {
		if a.ID == id {
			return a, true
		}
	}
	return models.Asset{}, false
}
