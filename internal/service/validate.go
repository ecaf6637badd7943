package service

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func init() {
	// в сообщениях используем имена полей из json-тегов
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func jsonFieldName(fe validator.FieldError) string {
	if fe.Field() != "" {
		return fe.Field()
	}
	return fe.StructField()
}
