package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// sniffLen сколько байт нужно http.DetectContentType
const sniffLen = 512

// TypePDF медиа-тип PDF документа
const TypePDF = "application/pdf"

// allowedTypes типы, которые принимает хранилище, и расширения сохраняемых файлов
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	TypePDF:      ".pdf",
}

// DetectType определяет медиа-тип по первым байтам содержимого.
// Заявленный клиентом Content-Type не учитывается.
func DetectType(head []byte) (string, error) {
	if len(head) == 0 {
		return "", ErrEmptyFile
	}
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}

	detected := http.DetectContentType(head)
	mediaType, _, err := mime.ParseMediaType(detected)
	if err != nil {
		mediaType = detected
	}

	if _, ok := allowedTypes[mediaType]; !ok {
		return "", fmt.Errorf("%w: detected %s", ErrUnsupportedType, mediaType)
	}
	return mediaType, nil
}

// Sniff читает начало потока и определяет тип содержимого.
// Возвращённый поток снова начинается с первого байта.
func Sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("%w: read stream: %v", ErrStoreFailed, err)
	}
	head = head[:n]

	mediaType, err := DetectType(head)
	if err != nil {
		return "", nil, err
	}
	return mediaType, io.MultiReader(bytes.NewReader(head), r), nil
}

// IsImage сообщает, что медиа-тип относится к изображениям
func IsImage(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}

func extensionFor(mediaType string) string {
	return allowedTypes[mediaType]
}
