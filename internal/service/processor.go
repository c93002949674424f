package service

import "context"

// PaymentProcessor валидирует сумму и делегирует проведение платежа в Gateway.
// Не логирует, не хранит состояние между вызовами: единственное поле
// задаётся в конструкторе и дальше только читается, поэтому один экземпляр
// можно использовать из нескольких горутин.
type PaymentProcessor struct {
	gateway Gateway
}

// NewPaymentProcessor создаёт PaymentProcessor поверх переданного gateway.
// gateway не должен быть nil; время его жизни контролирует вызывающий код.
func NewPaymentProcessor(gateway Gateway) *PaymentProcessor {
	return &PaymentProcessor{
		gateway: gateway,
	}
}

// ProcessPayment проводит платёж на amount.
// При amount <= 0 возвращает *InvalidArgumentError и не обращается к gateway.
// Иначе ровно один раз вызывает gateway и возвращает его результат и ошибку без изменений.
func (p *PaymentProcessor) ProcessPayment(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", &InvalidArgumentError{Message: invalidValueMessage}
	}

	return p.gateway.RealizePayment(ctx, amount)
}
