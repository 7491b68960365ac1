package handlers

import (
	"log/slog"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding tags on gin's validator.
// It is safe to call more than once.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		slog.Warn("Gin validator engine is not go-playground; custom tags unavailable")
		return
	}
	for tag, fn := range customValidations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			slog.Error("Failed to register validation tag", slog.String("tag", tag), slog.String("error", err.Error()))
		}
	}
}

var customValidations = map[string]validator.Func{
	"recurrence":   validRecurrence,
	"room_numbers": validRoomNumbers,
}

// validRecurrence accepts weekly, monthly or yearly.
func validRecurrence(fl validator.FieldLevel) bool {
	_, err := domain.ParseRecurrenceType(fl.Field().String())
	return err == nil
}

// validRoomNumbers requires a non-empty list of positive room numbers.
func validRoomNumbers(fl validator.FieldLevel) bool {
	rooms, ok := fl.Field().Interface().([]int)
	if !ok || len(rooms) == 0 {
		return false
	}
	for _, r := range rooms {
		if r <= 0 {
			return false
		}
	}
	return true
}
