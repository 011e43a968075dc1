package uploads

import "errors"

var (
	// ErrFileTooLarge возвращается, когда файл превышает допустимый размер
	ErrFileTooLarge = errors.New("uploads: file is too large")

	// ErrEmptyFile возвращается для пустого файла
	ErrEmptyFile = errors.New("uploads: file is empty")

	// ErrUnsupportedType возвращается, когда содержимое не является разрешённым изображением или PDF
	ErrUnsupportedType = errors.New("uploads: unsupported content type")

	// ErrStoreFailed возвращается при ошибке сохранения файла
	ErrStoreFailed = errors.New("uploads: failed to store file")

	// ErrUnknownDriver возвращается для неизвестного драйвера хранилища
	ErrUnknownDriver = errors.New("uploads: unknown storage driver")
)
