package draft

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истёк TTL
	ErrDraftNotFound = errors.New("draft.store: draft not found")

	// ErrEncode возвращается при ошибке сериализации черновика
	ErrEncode = errors.New("draft.store: failed to encode draft")

	// ErrDecode возвращается при ошибке десериализации черновика
	ErrDecode = errors.New("draft.store: failed to decode draft")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("draft.store: redis error")
)
