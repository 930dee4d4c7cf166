package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Strategy stores an uploaded file and returns the public URI the
// content service will carry as an opaque string. The strategy is
// chosen once at startup; nothing downstream depends on which backend
// is active.
type Strategy interface {
	Save(filename string, r io.Reader) (string, error)
}

// Disk writes uploads under Dir and serves them at BaseURL/images/.
type Disk struct {
	Dir     string
	BaseURL string
}

func NewDisk(dir, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Disk{Dir: dir, BaseURL: baseURL}, nil
}

func (d *Disk) Save(filename string, r io.Reader) (string, error) {
	name := uniqueName(filename)

	f, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	return fmt.Sprintf("%s/images/%s", strings.TrimSuffix(d.BaseURL, "/"), name), nil
}

// uniqueName keeps the base name readable and appends a timestamp, so
// repeated uploads of photo.jpg become photo_1718041200000.jpg.
func uniqueName(filename string) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_%d%s", stem, time.Now().UnixMilli(), ext)
}
