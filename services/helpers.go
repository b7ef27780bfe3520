package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/storage"
)

// runInTx executes fn inside a transaction, rolling back on error or panic.
func runInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DivisionLocker serializes engine mutations per division. Schedule and
// playoff regeneration are delete-then-insert sequences, and a result update
// touches two standing rows; the database guards single rows but not these
// multi-row sequences, so at most one engine mutation may run per division.
type DivisionLocker struct {
	locks sync.Map // divisionID -> *sync.Mutex
}

func NewDivisionLocker() *DivisionLocker {
	return &DivisionLocker{}
}

// Lock blocks until the division's mutex is held and returns the unlock func.
func (l *DivisionLocker) Lock(divisionID int) func() {
	mu, _ := l.locks.LoadOrStore(divisionID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func trimmedName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

func populateTeamCrestURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.CrestKey != nil && *team.CrestKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.CrestKey)
		if url != "" {
			team.CrestURL = &url
		}
	}
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		return "", fmt.Errorf("unsupported image content type %q", contentType)
	}
}
