package store

import "github.com/tools4freee/t4f/internal/model"

// ConfigStore handles config persistence.
type ConfigStore interface {
	Path() string
	Exists() bool
	Load() (*model.Config, error)
	Save(cfg *model.Config) error
	// Raw returns the file content as stored. os.ErrNotExist when there is no file.
	Raw() ([]byte, error)
	SaveRaw(data []byte) error
	EnsureExists() error
}
