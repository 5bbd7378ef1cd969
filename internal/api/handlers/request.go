package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tkardach/SwimClubServer/internal/domain"
)

// maxBodySize ограничение размера тела запроса (описание проблемы до 5000 символов)
const maxBodySize = 64 << 10

var validate = newValidator()

// newValidator называет поля в ошибках по json-тегам
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON читает тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// Validate проверяет теги validate у модели запроса
// Возвращает понятное клиенту описание первой ошибки
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required", fe.Field())
		case "oneof":
			return fmt.Errorf("%s must be one of: %s", fe.Field(), fe.Param())
		case "email":
			return fmt.Errorf("%s must be a valid email", fe.Field())
		default:
			return fmt.Errorf("%s is invalid (%s=%s)", fe.Field(), fe.Tag(), fe.Param())
		}
	}
	return err
}

// ParseDate разбирает дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return date, nil
}

// Reason текст ошибки без префикса пакета, для бизнес-отказов
// "create_reservation: weekly reservation limit exceeded: ..." -> "weekly reservation limit exceeded: ..."
func Reason(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i > 0 && !strings.Contains(msg[:i], " ") {
		return msg[i+2:]
	}
	return msg
}
