// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package runs the form pre-checks of the web views. It never replaces
// backend validation: a form that passes here is still checked by the API,
// and both sides phrase a missing field the same way.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
)

// Messages shared with the backend-facing forms.
const (
	// MsgRequiredFormat is filled with the visible label of the empty field.
	MsgRequiredFormat = "Das Feld %s darf nicht leer sein."

	// MsgPasswordMismatch is shown when password and confirmation differ.
	MsgPasswordMismatch = "Passwörter stimmen nicht überein!"

	// MsgBackendRequired is the backend's own wording for an empty field.
	MsgBackendRequired = "Dieses Feld darf nicht leer sein."
)

// ErrInvalidForm is returned when the request form cannot be parsed.
var ErrInvalidForm = apperr.ValidationError("Ungültige Formulardaten.")

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty. label is the name the user
// sees next to the input.
func (v *Validator) Required(field, label, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, fmt.Sprintf(MsgRequiredFormat, label))
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximal %d Zeichen erlaubt.", max))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Der Wert muss zwischen %d und %d liegen.", min, max))
	}
	return v
}

// Email fails if a non-empty value is not a valid RFC 5322 email address.
// Emptiness is [Validator.Required]'s job, so the two never double-report.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Bitte eine gültige E-Mail-Adresse angeben.")
	}
	return v
}

// Match fails if value and confirmation differ.
func (v *Validator) Match(field, value, confirmation, message string) *Validator {
	if value != confirmation {
		v.add(field, message)
	}
	return v
}

// Date fails if a non-empty value does not parse with layout.
func (v *Validator) Date(field, label, value, layout string) *Validator {
	if value == "" {
		return v
	}
	if _, err := time.Parse(layout, value); err != nil {
		v.add(field, fmt.Sprintf("Das Feld %s enthält kein gültiges Datum.", label))
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Erlaubt sind: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("csvFile", file == nil, "Bitte eine CSV-Datei auswählen.")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// It is the only output method. Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Eingaben unvollständig.", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Eingaben unvollständig.", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
