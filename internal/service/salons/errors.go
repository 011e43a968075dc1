package salons

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrMobileTaken возвращается, когда салон с таким номером уже зарегистрирован
	ErrMobileTaken = errors.New("mobile already registered")

	// ErrAlreadyApproved возвращается при повторном одобрении салона
	ErrAlreadyApproved = errors.New("salon is already approved")

	// ErrNotReadyForApproval возвращается, когда для одобрения не хватает данных
	ErrNotReadyForApproval = errors.New("salon is not ready for approval")

	// ErrUnsupportedFileType возвращается при недопустимом типе загружаемого файла
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileRejected возвращается, когда хранилище отклонило файл (пустой или слишком большой)
	ErrFileRejected = errors.New("uploaded file rejected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
