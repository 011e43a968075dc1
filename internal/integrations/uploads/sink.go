package uploads

import (
	"context"
	"fmt"
	"io"
)

const (
	DriverLocal      = "local"
	DriverCloudinary = "cloudinary"
)

// Sink хранилище загружаемых файлов.
// Тип файла определяется по содержимому, а не по заявленному Content-Type.
type Sink interface {
	Store(ctx context.Context, r io.Reader) (string, error)
}

// Options параметры выбора и настройки хранилища
type Options struct {
	Driver       string
	MaxSize      int64
	Dir          string // local
	PublicPrefix string // local
	CloudName    string // cloudinary
	APIKey       string // cloudinary
	APISecret    string // cloudinary
	Folder       string // cloudinary
}

// New создает хранилище по драйверу из конфигурации
func New(opts Options) (Sink, error) {
	switch opts.Driver {
	case DriverLocal, "":
		return NewLocalSink(opts.Dir, opts.PublicPrefix, opts.MaxSize)
	case DriverCloudinary:
		return NewCloudinarySink(opts.CloudName, opts.APIKey, opts.APISecret, opts.Folder, opts.MaxSize)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
