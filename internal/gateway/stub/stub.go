package stub

import "context"

// DefaultResult - результат, который stub возвращает, если другой не задан
const DefaultResult = "Simulated payment success"

// Gateway всегда успешно "проводит" платёж и возвращает фиксированный результат.
// Используется для локального запуска и тестов вместо реального провайдера.
type Gateway struct {
	result string
}

// New создаёт stub gateway. Пустой result заменяется на DefaultResult.
func New(result string) *Gateway {
	if result == "" {
		result = DefaultResult
	}
	return &Gateway{result: result}
}

// RealizePayment возвращает фиксированный результат для любой суммы
func (g *Gateway) RealizePayment(ctx context.Context, amount float64) (string, error) {
	return g.result, nil
}
