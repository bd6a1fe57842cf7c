// Package lineage reconstructs the version history of an asset from parent
// references. It is a pure function of the asset set, no I/O.
package lineage

import (
	"errors"

	"github.com/medregister-pl/asset-register/pkg/register/models"
)

// ErrNotFound means the requested asset ID is absent from the fetched set.
var ErrNotFound = errors.New("asset not found")

// Resolve returns the version chain of assetID, root first, the queried
// version last.
//
// The walk goes backwards over ParentID. A parent that is missing from the
// set ends the chain silently: a broken lineage is "history ends here", not
// an error. A visited set bounds the walk so cyclic data cannot loop forever;
// the result never holds more entries than the input set.
func Resolve(assetID string, assets []models.Asset) ([]models.Asset, error) {
	byID := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}

	current, ok := byID[assetID]
	if !ok {
		return nil, ErrNotFound
	}

	visited := map[string]bool{current.ID: true}
	chain := []models.Asset{current}

	for current.ParentID != "" {
		parent, ok := byID[current.ParentID]
		if !ok || visited[parent.ID] {
			break
		}
		visited[parent.ID] = true
		chain = append(chain, parent)
		current = parent
	}

	// Collected newest-to-oldest, callers want the root first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Broken reports whether a resolved chain stops short of a true root, i.e.
// the earliest entry still references a parent that could not be found.
func Broken(chain []models.Asset) bool {
	return len(chain) > 0 && chain[0].ParentID != ""
}
