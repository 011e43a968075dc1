package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinarySink загружает файлы в папку Cloudinary и возвращает их secure URL
type CloudinarySink struct {
	cld     *cloudinary.Cloudinary
	folder  string
	maxSize int64
}

// NewCloudinarySink создает клиент Cloudinary по учётным данным
func NewCloudinarySink(cloudName, apiKey, apiSecret, folder string, maxSize int64) (*CloudinarySink, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("%w: cloudinary credentials are not set", ErrStoreFailed)
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: init cloudinary: %v", ErrStoreFailed, err)
	}

	return &CloudinarySink{cld: cld, folder: folder, maxSize: maxSize}, nil
}

// Store загружает поток в Cloudinary.
// Изображения загружаются как image, PDF как raw.
func (s *CloudinarySink) Store(ctx context.Context, r io.Reader) (string, error) {
	body, err := readLimited(r, s.maxSize)
	if err != nil {
		return "", err
	}

	contentType, err := DetectType(body)
	if err != nil {
		return "", err
	}

	resourceType, publicID := "image", uuid.NewString()
	if contentType == TypePDF {
		// raw ресурсы хранят расширение в public ID
		resourceType, publicID = "raw", publicID+extensionFor(contentType)
	}

	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(body), uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: cloudinary upload (%s): %v", ErrStoreFailed, contentType, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("%w: cloudinary upload (%s): %s", ErrStoreFailed, contentType, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("%w: cloudinary returned no URL", ErrStoreFailed)
	}

	return result.SecureURL, nil
}
