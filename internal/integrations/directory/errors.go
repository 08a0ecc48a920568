package directory

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("directory: shop not found")

	// ErrStaffNotFound возвращается, когда мастер не найден в магазине
	ErrStaffNotFound = errors.New("directory: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в магазине
	ErrServiceNotFound = errors.New("directory: service not found")

	// ErrInvalidResponse возвращается при некорректном ответе справочного сервиса
	ErrInvalidResponse = errors.New("directory: invalid response")

	// ErrInternal возвращается при сетевых и прочих внутренних ошибках
	ErrInternal = errors.New("directory: internal error")
)
