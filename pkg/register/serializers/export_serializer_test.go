package serializers_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/register/serializers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAssetsCSV(t *testing.T) {
	created := time.Date(2023, 5, 12, 10, 30, 0, 0, time.UTC)
	assets := []models.Asset{
		{
			FirstName: "Jan",
			LastName:  "Kowalski",
			Hospital:  "Szpital Miejski",
			Version:   2,
			CreatedAt: created,
			Data: []models.AssetRow{
				{"nazwa": "EKG"},
				{"nazwa": "USG"},
			},
			Description: "inwentaryzacja",
		},
		{
			FirstName: "Anna",
			LastName:  "Nowak",
			Hospital:  "Szpital Wojewódzki",
			IsDeleted: true,
			Version:   1,
			CreatedAt: created,
			Data:      []models.AssetRow{{"nazwa": "RTG"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, serializers.WriteAssetsCSV(&buf, assets))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header + one row per data row")
	assert.Equal(t, serializers.ExportHeader, records[0])

	assert.Equal(t, "Jan", records[1][0])
	assert.Equal(t, "nie", records[1][3])
	assert.Equal(t, "2", records[1][4])
	assert.Equal(t, "2023-05-12 10:30:00", records[1][5])
	assert.JSONEq(t, `{"nazwa":"EKG"}`, records[1][7])
	assert.JSONEq(t, `{"nazwa":"USG"}`, records[2][7])

	assert.Equal(t, "tak", records[3][3])
}

func TestWriteAssetsCSV_AssetWithoutRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, serializers.WriteAssetsCSV(&buf, []models.Asset{{FirstName: "Jan", Version: 1}}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "", records[1][7])
}
