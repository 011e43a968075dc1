package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalSink сохраняет файлы в каталог на диске.
// Возвращает путь вида <publicPrefix>/<uuid><ext>, который отдаёт файловый сервер.
type LocalSink struct {
	dir          string
	publicPrefix string
	maxSize      int64
}

// NewLocalSink создает каталог, если его нет, и возвращает sink
func NewLocalSink(dir, publicPrefix string, maxSize int64) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create upload dir %s: %v", ErrStoreFailed, dir, err)
	}

	return &LocalSink{
		dir:          dir,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
		maxSize:      maxSize,
	}, nil
}

// Store записывает поток в новый файл.
// Расширение выбирается по содержимому, файлы неразрешённых типов отклоняются.
func (s *LocalSink) Store(ctx context.Context, r io.Reader) (string, error) {
	body, err := readLimited(r, s.maxSize)
	if err != nil {
		return "", err
	}

	mediaType, err := DetectType(body)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + extensionFor(mediaType)
	target := filepath.Join(s.dir, name)

	if err := os.WriteFile(target, body, 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrStoreFailed, target, err)
	}

	return path.Join(s.publicPrefix, name), nil
}

// PublicPrefix URL-префикс, под которым файлы раздаются
func (s *LocalSink) PublicPrefix() string {
	return s.publicPrefix
}

// Handler раздаёт сохранённые файлы под PublicPrefix.
// Каталоги не листингуются: запрос к каталогу получает 404.
func (s *LocalSink) Handler() http.Handler {
	return http.StripPrefix(s.publicPrefix+"/", http.FileServer(filesOnly{http.Dir(s.dir)}))
}

// filesOnly файловая система без доступа к каталогам
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}

	return file, nil
}

// readLimited читает поток целиком, отклоняя пустые файлы и файлы больше maxSize
func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	var buf bytes.Buffer

	reader := r
	if maxSize > 0 {
		reader = io.LimitReader(r, maxSize+1)
	}

	n, err := buf.ReadFrom(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: read stream: %v", ErrStoreFailed, err)
	}
	if n == 0 {
		return nil, ErrEmptyFile
	}
	if maxSize > 0 && n > maxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, maxSize)
	}

	return buf.Bytes(), nil
}
