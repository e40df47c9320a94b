// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Provider — контракт для любого AI-сервиса.
//
// Коллаборатор непрозрачен: даём список role-tagged сообщений и
// температуру, получаем текст или ошибку. Ошибка ловится на месте
// вызова и переводит операцию на детерминированный fallback — для
// операций с fallback она никогда не фатальна.
type Provider interface {
	// Chat отправляет запрос и возвращает текстовый ответ (или JSON строку)
	Chat(ctx context.Context, req ChatRequest) (string, error)
}
