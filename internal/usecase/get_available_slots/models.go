package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов.
// Длительность задается явно либо вычисляется по корзине Items.
type Request struct {
	UserID          int64             // ID пользователя (для логирования, не влияет на результат)
	Date            time.Time         // Дата (без времени)
	StaffID         *int64            // nil - любой свободный мастер
	DurationMinutes int               // Длительность в минутах
	Items           []domain.CartItem // Услуги и комбо, если длительность не задана
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time   // Дата, на которую запрашивались слоты
	StaffID         *int64      // Мастер из запроса
	DurationMinutes int         // Итоговая длительность
	Slots           []time.Time // Времена начала в часовом поясе салона
}
