package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMalformedBody    = errors.New("malformed body")
)

// TransportError описывает неудачный опрос эндпоинта: код ответа вне диапазона 2xx,
// сетевую ошибку или тело ответа, которое не разбирается как JSON.
type TransportError struct {
	Endpoint   string // Адрес, к которому выполнялся запрос
	StatusCode int    // HTTP статус код, 0 если ответ не был получен
	Err        error  // Исходная причина
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode != 0 && e.Err == nil {
		return fmt.Sprintf("fetch %s: HTTP %d", e.Endpoint, e.StatusCode)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s (HTTP %d): %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.Err == nil && e.StatusCode != 0 {
		return ErrUnexpectedStatus
	}
	return e.Err
}

// NewStatusError создает ошибку для ответа с кодом вне диапазона 2xx.
func NewStatusError(endpoint string, statusCode int) *TransportError {
	return &TransportError{Endpoint: endpoint, StatusCode: statusCode}
}

// NewTransportError оборачивает сетевую ошибку или ошибку разбора ответа.
func NewTransportError(endpoint string, statusCode int, err error) *TransportError {
	return &TransportError{Endpoint: endpoint, StatusCode: statusCode, Err: err}
}

// IsTransport сообщает, есть ли в цепочке ошибок TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode возвращает код ответа из цепочки ошибок или 0.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
