package infra

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/tnqbao/gau-bakery-service/config"
	"github.com/tnqbao/gau-bakery-service/entity"
	"github.com/tnqbao/gau-bakery-service/utils"
)

const saveAttempts = 3

// DiskAssetStore keeps assets as flat files under one directory.
type DiskAssetStore struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

func InitDiskAssetStore(cfg *config.EnvConfig) *DiskAssetStore {
	store, err := NewDiskAssetStore(afero.NewOsFs(), cfg.Asset.Dir)
	if err != nil {
		log.Printf("Asset directory %s unusable: %v", cfg.Asset.Dir, err)
		return nil
	}
	return store
}

func NewDiskAssetStore(fs afero.Fs, dir string) (*DiskAssetStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}
	return &DiskAssetStore{fs: fs, dir: dir, now: time.Now}, nil
}

func (d *DiskAssetStore) Dir() string {
	return d.dir
}

// Save writes data under a freshly generated name. Files are opened with
// O_EXCL so an existing asset is never overwritten.
func (d *DiskAssetStore) Save(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	for attempt := 0; attempt < saveAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		name := utils.NewAssetName(originalName, contentType, d.now())
		path := filepath.Join(d.dir, name)

		f, err := d.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", name, err)
		}

		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			_ = d.fs.Remove(path)
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			_ = d.fs.Remove(path)
			return "", fmt.Errorf("failed to close %s: %w", name, err)
		}
		return name, nil
	}
	return "", fmt.Errorf("no free asset name after %d attempts", saveAttempts)
}

// Delete removes the named asset. A missing file is not an error.
func (d *DiskAssetStore) Delete(ctx context.Context, filename string) error {
	if !utils.ValidAssetName(filename) {
		return fmt.Errorf("invalid asset name %q", filename)
	}
	err := d.fs.Remove(filepath.Join(d.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (d *DiskAssetStore) List(ctx context.Context) ([]entity.Asset, error) {
	infos, err := afero.ReadDir(d.fs, d.dir)
	if err != nil {
		return nil, err
	}

	assets := make([]entity.Asset, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		assets = append(assets, entity.Asset{
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return assets, nil
}
