package salon

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon.repository: salon not found")

	// ErrMobileTaken возвращается, когда салон с таким номером уже зарегистрирован
	ErrMobileTaken = errors.New("salon.repository: mobile already registered")

	// ErrPhotoLimit возвращается, когда новые фотографии превысили бы лимит салона
	ErrPhotoLimit = errors.New("salon.repository: photo limit exceeded")

	// ErrStatusMismatch возвращается, когда текущий статус салона не допускает обновления
	ErrStatusMismatch = errors.New("salon.repository: salon status does not match")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("salon.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("salon.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("salon.repository: failed to scan row")
)
