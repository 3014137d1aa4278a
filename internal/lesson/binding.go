package lesson

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterRequestValidators adds the "clock" and "dateonly" binding tags
// used by request structs to gin's validator.
func RegisterRequestValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return ValidClock(fl.Field().String())
		})

		v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		})
	})
}
