package models

import (
	"encoding/json"
	"time"
)

// AssetRow is one row of an uploaded CSV, keyed by column header.
type AssetRow map[string]string

// Asset is a dataset version record owned by the remote asset service.
// Attribution fields are a snapshot of the uploader at creation time, not a
// live reference into the local user table.
type Asset struct {
	ID          string     `json:"ID"`
	ParentID    string     `json:"ParentId,omitempty"`
	Version     int        `json:"Version"`
	UserID      string     `json:"UserId"`
	FirstName   string     `json:"FirstName"`
	LastName    string     `json:"LastName"`
	Hospital    string     `json:"Hospital"`
	Data        []AssetRow `json:"Data"`
	Description string     `json:"Description,omitempty"`
	IsDeleted   bool       `json:"IsDeleted"`
	CreatedAt   time.Time  `json:"CreatedAt"`
}

// AssetPayload is what gets POSTed to the remote service. Data travels as a
// JSON-encoded string inside the form body.
type AssetPayload struct {
	ID          string
	UserID      string
	FirstName   string
	LastName    string
	Hospital    string
	Data        []AssetRow
	ParentID    string
	Version     int
	Description string
}

// EncodeData serializes the row set for the form-encoded create call.
func (p AssetPayload) EncodeData() (string, error) {
	buf, err := json.Marshal(p.Data)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
