package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	UserID        int64             // ID сотрудника/клиента, оформляющего запись (для логирования)
	CustomerPhone string            // Телефон клиента - внешний ключ клиента
	CustomerName  string            // Имя клиента
	CustomerEmail *string           // Email клиента (опционально)
	StaffID       *int64            // nil - любой свободный мастер
	Items         []domain.CartItem // Корзина услуг и комбо
	StartTime     time.Time         // Желаемое время начала
	Notes         *string           // Заметки (опционально)
	DraftKey      *string           // Ключ черновика, который нужно очистить после записи
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64               // ID созданной записи
	Appointment *domain.Appointment // Запись с позициями и счетом
	Customer    *domain.Customer    // Клиент после upsert
	Cart        *domain.CartSummary // Рассчитанная корзина
}
