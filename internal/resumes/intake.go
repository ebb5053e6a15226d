// Package resumes accepts uploaded resume files and stores them under
// collision-free names.
package resumes

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"forms-backend/internal/shared/storage/object"
	"forms-backend/internal/shared/telemetry"
	"forms-backend/internal/shared/util"
	"forms-backend/internal/validation"
)

const fallbackName = "resume"

// ErrMissingFile is returned when no resume was attached.
var ErrMissingFile = validation.New("resume", "Resume file is required.")

// Intake stores uploads in an object store.
type Intake struct {
	Store object.ObjectStore
	// NewID returns the unique prefix for a storage name. Defaults to uuid.NewString.
	NewID func() string
}

// NewIntake constructs an Intake over store.
func NewIntake(store object.ObjectStore) *Intake {
	return &Intake{Store: store, NewID: uuid.NewString}
}

// StorageName returns "<id>-<sanitized client name>".
func StorageName(id, clientName string) string {
	name := util.SecureFileName(clientName)
	if name == "" {
		name = fallbackName
	}
	return id + "-" + name
}

// Save writes the uploaded file and returns where it was stored.
func (in *Intake) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil || strings.TrimSpace(fh.Filename) == "" {
		return "", ErrMissingFile
	}

	newID := in.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	key := StorageName(newID(), fh.Filename)

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	location, size, err := in.Store.Put(ctx, key, file)
	if err != nil {
		return "", fmt.Errorf("store resume: %w", err)
	}

	telemetry.Info("resume.stored", map[string]any{
		"location":    location,
		"client_name": fh.Filename,
		"size_bytes":  size,
	})
	return location, nil
}
