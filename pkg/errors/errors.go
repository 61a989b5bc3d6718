package errors

import "errors"

// ValidationError 入参校验错误，Message 原样返回给调用方
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation 创建校验错误
func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

// AsValidation 判断 err 链中是否包含校验错误，返回其原始消息
func AsValidation(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}
