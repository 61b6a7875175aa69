// Package validation 包裝 go-playground/validator，作為 echo 的 Validator，
// 並把驗證錯誤轉成以表單欄位名稱為鍵的訊息。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator 實作 echo.Validator
type Validator struct {
	validate *validator.Validate
}

// New 建立 Validator；欄位名稱優先取 form tag，其次 json tag
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("integer", isInteger)
	return &Validator{validate: v}
}

// Validate 驗證結構
func (cv *Validator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// isInteger 檢查字串欄位可以解析成 32 位元整數 (對應 INTEGER 欄位)
func isInteger(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(fl.Field().String()), 10, 32)
	return err == nil
}

// FieldErrors 以欄位名稱對應錯誤訊息，供表單重新顯示
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// Fields 將 Validate 的錯誤轉成 FieldErrors；err 不是驗證錯誤時回傳 nil
func Fields(err error) FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		if _, exists := out[fe.Field()]; exists {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "email":
		return "Invalid email address."
	case "integer":
		return "Not a valid integer value."
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}
