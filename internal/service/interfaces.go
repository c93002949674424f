package service

import "context"

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name=Gateway --dir=. --output=./mocks --outpkg=mocks

// Gateway определяет внешний платёжный провайдер.
// Конкретная реализация передаётся в PaymentProcessor при создании
// (stub, удалённый gRPC провайдер, тестовый mock).
type Gateway interface {
	// RealizePayment проводит платёж на указанную сумму
	// и возвращает описание результата от провайдера
	RealizePayment(ctx context.Context, amount float64) (string, error)
}
