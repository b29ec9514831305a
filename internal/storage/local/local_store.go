// Package local implements the artifact store on the local filesystem.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"paperbridge/internal/domain"
	"paperbridge/internal/port"
)

const (
	originalsDir = "originals"
	archiveDir   = "archive"
)

// Store keeps originals and archival copies under two directories below a
// configured root. Files are written once per key and never deleted;
// concurrent writers to the same key are last-writer-wins.
type Store struct {
	originals string
	archive   string
}

var _ port.ArtifactStore = (*Store)(nil)

// NewStore creates the staging directories under root.
func NewStore(root string) (*Store, error) {
	s := &Store{
		originals: filepath.Join(root, originalsDir),
		archive:   filepath.Join(root, archiveDir),
	}
	for _, dir := range []string{s.originals, s.archive} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating staging dir %s: %w: %v", dir, domain.ErrLocalIO, err)
		}
	}
	return s, nil
}

func (s *Store) SaveOriginal(ctx context.Context, externalID string, data []byte) (string, error) {
	path := filepath.Join(s.originals, fileKey(externalID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing original %s: %w: %v", externalID, domain.ErrLocalIO, err)
	}
	return path, nil
}

func (s *Store) HasOriginal(ctx context.Context, externalID string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.originals, fileKey(externalID)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking original %s: %w: %v", externalID, domain.ErrLocalIO, err)
	}
	return true, nil
}

func (s *Store) SaveArchive(ctx context.Context, documentID int, data []byte) (string, error) {
	path := filepath.Join(s.archive, strconv.Itoa(documentID)+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing archive %d: %w: %v", documentID, domain.ErrLocalIO, err)
	}
	return path, nil
}

// fileKey flattens an external id into a safe file name.
func fileKey(externalID string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return replacer.Replace(externalID) + ".pdf"
}
