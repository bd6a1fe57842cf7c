// Package staffimport loads hospitals and staff accounts from a CSV export,
// typically during the onboarding of a new hospital.
package staffimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medregister-pl/asset-register/pkg/register/helpers/password"
	"github.com/medregister-pl/asset-register/pkg/register/models"
)

type Logger interface {
	Printf(format string, v ...any)
}

type Options struct {
	CSVPath string
	DryRun  bool
	Logger  Logger
}

type Result struct {
	Processed   int
	Inserted    int
	Skipped     int
	ParseErrors int
}

type csvRow struct {
	Name      string
	FirstName string
	LastName  string
	Email     string
	Hospital  string
	Role      string
}

type headerIndex struct {
	name      int
	firstName int
	lastName  int
	email     int
	hospital  int
	role      int
}

// ImportCSV reads the file and creates the missing hospitals and users.
// Every created account gets a generated initial password, printed to the
// log so it can be handed over out of band.
func ImportCSV(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	if db == nil {
		return Result{}, errors.New("db is nil")
	}
	csvPath := strings.TrimSpace(opts.CSVPath)
	if csvPath == "" {
		return Result{}, errors.New("csv path is empty")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	idx, err := mapHeaders(headers)
	if err != nil {
		return Result{}, fmt.Errorf("invalid csv header: %w", err)
	}

	result := Result{}
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			logger.Printf("line %d: read error: %v", line, err)
			result.ParseErrors++
			continue
		}
		row, err := parseRow(record, idx)
		if err != nil {
			logger.Printf("line %d: %v", line, err)
			result.ParseErrors++
			continue
		}
		result.Processed++

		var existing models.User
		err = db.WithContext(ctx).Where("name = ?", row.Name).First(&existing).Error
		if err == nil {
			result.Skipped++
			logger.Printf("line %d: user %q already exists, skipped", line, row.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return result, err
		}

		if opts.DryRun {
			result.Inserted++
			logger.Printf("line %d: would create user %q (%s, %s)", line, row.Name, row.Hospital, row.Role)
			continue
		}

		if err := createUser(ctx, db, row, logger); err != nil {
			logger.Printf("line %d: %v", line, err)
			result.ParseErrors++
			continue
		}
		result.Inserted++
	}

	return result, nil
}

func createUser(ctx context.Context, db *gorm.DB, row csvRow, logger Logger) error {
	var hospital models.Hospital
	if err := db.WithContext(ctx).Where("name = ?", row.Hospital).
		FirstOrCreate(&hospital, models.Hospital{Name: row.Hospital}).Error; err != nil {
		return fmt.Errorf("hospital %q: %w", row.Hospital, err)
	}

	var role models.Role
	if err := db.WithContext(ctx).Where("name = ?", row.Role).
		FirstOrCreate(&role, models.Role{Name: row.Role}).Error; err != nil {
		return fmt.Errorf("role %q: %w", row.Role, err)
	}

	initial := uuid.NewString()
	hashed, err := password.Hash(initial)
	if err != nil {
		return err
	}

	user := models.User{
		Name:       row.Name,
		Password:   hashed,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Email:      row.Email,
		IsActive:   true,
		HospitalID: &hospital.ID,
		RoleID:     &role.ID,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("create user %q: %w", row.Name, err)
	}
	logger.Printf("created user %q, initial password: %s", row.Name, initial)
	return nil
}

func mapHeaders(headers []string) (headerIndex, error) {
	idx := headerIndex{name: -1, firstName: -1, lastName: -1, email: -1, hospital: -1, role: -1}
	for i, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "login":
			idx.name = i
		case "first_name", "imie", "imię":
			idx.firstName = i
		case "last_name", "nazwisko":
			idx.lastName = i
		case "email", "e-mail":
			idx.email = i
		case "hospital", "szpital":
			idx.hospital = i
		case "role", "rola":
			idx.role = i
		}
	}
	if idx.name < 0 || idx.email < 0 || idx.hospital < 0 {
		return idx, errors.New("missing required columns: name, email, hospital")
	}
	return idx, nil
}

func parseRow(record []string, idx headerIndex) (csvRow, error) {
	get := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	row := csvRow{
		Name:      get(idx.name),
		FirstName: get(idx.firstName),
		LastName:  get(idx.lastName),
		Email:     get(idx.email),
		Hospital:  get(idx.hospital),
		Role:      get(idx.role),
	}
	if row.Name == "" {
		return row, errors.New("empty name column")
	}
	if row.Email == "" {
		return row, fmt.Errorf("user %q: empty email column", row.Name)
	}
	if row.Hospital == "" {
		return row, fmt.Errorf("user %q: empty hospital column", row.Name)
	}
	if row.Role == "" {
		row.Role = "Pracownik"
	}
	return row, nil
}
