package entity

import "time"

// Document categories
const (
	DocumentMedical     = "medical"
	DocumentCertificate = "certificate"
	DocumentLogbook     = "logbook"
	DocumentEndorsement = "endorsement"
	DocumentOther       = "other"
)

// Document is uploaded-file metadata. The file bytes themselves live in the
// external object store under StorageKey.
type Document struct {
	ID          string    `bson:"_id,omitempty"`
	OwnerID     string    `bson:"ownerId"`
	Name        string    `bson:"name"`
	Category    string    `bson:"category"`
	ContentType string    `bson:"contentType"`
	SizeBytes   int64     `bson:"sizeBytes"`
	StorageKey  string    `bson:"storageKey"`
	ExpiresOn   string    `bson:"expiresOn,omitempty"` // ISO date, medicals/certificates
	UploadedAt  time.Time `bson:"uploadedAt"`
}
