package service

import "errors"

// invalidValueMessage - текст ошибки валидации суммы
const invalidValueMessage = "Invalid value"

// InvalidArgumentError возвращается, когда аргумент операции не прошёл валидацию
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// IsInvalidArgument сообщает, является ли err (или что-то в его цепочке) InvalidArgumentError
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}
