package staffimport_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/medregister-pl/asset-register/pkg/staffimport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Role{}, &models.Hospital{}, &models.User{}))
	return db
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "staff.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportCSV(t *testing.T) {
	db := setupDB(t)
	path := writeCSV(t, "name;first_name;last_name;email;hospital;role\n"+
		"jkowalski;Jan;Kowalski;jan@example.com;Szpital Miejski;Pracownik\n"+
		"anowak;Anna;Nowak;anna@example.com;Szpital Miejski;\n")

	result, err := staffimport.ImportCSV(context.Background(), db, staffimport.Options{CSVPath: path})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Inserted)
	assert.Zero(t, result.ParseErrors)

	var users []models.User
	require.NoError(t, db.Preload("Hospital").Preload("Role").Find(&users).Error)
	require.Len(t, users, 2)
	assert.Equal(t, "Szpital Miejski", users[0].Hospital.Name)
	assert.Equal(t, "Pracownik", users[1].Role.Name, "missing role falls back to Pracownik")
	assert.NotEmpty(t, users[0].Password)

	var hospitals int64
	require.NoError(t, db.Model(&models.Hospital{}).Count(&hospitals).Error)
	assert.EqualValues(t, 1, hospitals, "hospital reused across rows")
}

func TestImportCSV_SkipsExisting(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.User{Name: "jkowalski", Email: "old@example.com"}).Error)

	path := writeCSV(t, "name;email;hospital\njkowalski;jan@example.com;Szpital Miejski\n")
	result, err := staffimport.ImportCSV(context.Background(), db, staffimport.Options{CSVPath: path})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Inserted)
}

func TestImportCSV_DryRun(t *testing.T) {
	db := setupDB(t)
	path := writeCSV(t, "name;email;hospital\njkowalski;jan@example.com;Szpital Miejski\n")

	result, err := staffimport.ImportCSV(context.Background(), db, staffimport.Options{CSVPath: path, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestImportCSV_BadHeader(t *testing.T) {
	db := setupDB(t)
	path := writeCSV(t, "foo;bar\n1;2\n")

	_, err := staffimport.ImportCSV(context.Background(), db, staffimport.Options{CSVPath: path})
	assert.Error(t, err)
}

func TestImportCSV_BadRowsCounted(t *testing.T) {
	db := setupDB(t)
	path := writeCSV(t, "name;email;hospital\n"+
		";jan@example.com;Szpital Miejski\n"+
		"anowak;anna@example.com;Szpital Miejski\n")

	result, err := staffimport.ImportCSV(context.Background(), db, staffimport.Options{CSVPath: path})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ParseErrors)
	assert.Equal(t, 1, result.Inserted)
}
