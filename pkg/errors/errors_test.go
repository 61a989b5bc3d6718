package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAsValidation(t *testing.T) {
	err := fmt.Errorf("assign: %w", NewValidation("至少选择一条报修请求"))

	msg, ok := AsValidation(err)
	if !ok {
		t.Fatal("期望识别为校验错误")
	}
	if msg != "至少选择一条报修请求" {
		t.Errorf("消息不符: %s", msg)
	}
}

func TestAsValidation_OtherError(t *testing.T) {
	if _, ok := AsValidation(errors.New("db down")); ok {
		t.Error("普通错误不应识别为校验错误")
	}
	if _, ok := AsValidation(nil); ok {
		t.Error("nil 不应识别为校验错误")
	}
}
