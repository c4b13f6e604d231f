package domain

import "errors"

// Закрытая таксономия ошибок внешних вызовов. Клиенты инфраструктуры
// оборачивают конкретные ответы в один из этих маркеров, а use-case'ы
// различают их через errors.Is.
var (
	// ErrUnauthorized — платформа отклонила учётные данные (401/403).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited — превышен лимит запросов (429).
	ErrRateLimited = errors.New("rate limited")
	// ErrNetwork — сетевая ошибка либо неожиданный статус.
	ErrNetwork = errors.New("network error")
	// ErrPersistence — не удалось сохранить или прочитать состояние.
	ErrPersistence = errors.New("persistence error")
	// ErrConfig — некорректная конфигурация.
	ErrConfig = errors.New("config error")
)
