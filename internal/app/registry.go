package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotel_registry/internal/adapters/observability"
	"hotel_registry/internal/domain"
)

const (
	msgGuestNotFound     = "guest with the given id was not found"
	msgGuarantorNotFound = "guarantor with the given id was not found"
	msgEmployeeNotFound  = "employee with the given id was not found"
	msgRoomNotFound      = "room with the given id was not found"
	msgBookingNotFound   = "booking with the given id was not found"
	msgResourceNotFound  = "resource with the given id was not found"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names so messages match what the client sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func notFound(msg string) error { return fmt.Errorf("%w: %s", domain.ErrNotFound, msg) }
func illegal(msg string) error  { return fmt.Errorf("%w: %s", domain.ErrIllegalOperation, msg) }

// missing turns a bare store miss into a NotFound carrying msg; any other
// error passes through untouched.
func missing(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(msg)
	}
	return err
}

// found reports whether a lookup hit, surfacing real store failures.
func found(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return illegal("invalid input: " + strings.Join(parts, ", "))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrIllegalOperation):
		return "illegal"
	case errors.Is(err, domain.ErrCommunication):
		return "communication"
	default:
		return "error"
	}
}

// record counts the operation and logs rejected business rules.
func record(registry, op string, err error) {
	observability.ObserveRegistry(registry, op, outcome(err))
	if err != nil {
		log.Debug().Str("registry", registry).Str("op", op).Err(err).Msg("operation rejected")
	}
}
