package serializers

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/medregister-pl/asset-register/pkg/register/models"
)

// ExportHeader is the fixed column set of the downloadable report.
var ExportHeader = []string{"Imię", "Nazwisko", "Szpital", "Usunięto", "Wersja", "Data dodania", "Opis", "Dane"}

const exportTimeLayout = "2006-01-02 15:04:05"

// WriteAssetsCSV flattens the asset set into the report: one output row per
// underlying data row, with the data row JSON-encoded in the last column.
func WriteAssetsCSV(w io.Writer, assets []models.Asset) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return err
	}

	for _, asset := range assets {
		rows := asset.Data
		if len(rows) == 0 {
			// keep the asset visible even when it carries no rows
			rows = []models.AssetRow{nil}
		}
		for _, row := range rows {
			encoded := ""
			if row != nil {
				buf, err := json.Marshal(row)
				if err != nil {
					return err
				}
				encoded = string(buf)
			}
			record := []string{
				asset.FirstName,
				asset.LastName,
				asset.Hospital,
				boolPL(asset.IsDeleted),
				strconv.Itoa(asset.Version),
				asset.CreatedAt.Format(exportTimeLayout),
				asset.Description,
				encoded,
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func boolPL(b bool) string {
	if b {
		return "tak"
	}
	return "nie"
}
