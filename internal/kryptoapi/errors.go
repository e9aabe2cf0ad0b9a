// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kryptoapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
)

// clientError turns a 4xx body into a validation error listing every
// message of the body in source order.
func clientError(status int, body []byte) *apperr.AppError {
	details := parseMessages(body)
	if len(details) == 0 {
		details = []apperr.FieldError{{Message: MsgRequestFailed}}
	}

	err := apperr.ValidationError(details[0].Message, details...)
	err.HTTPStatus = status
	return err
}

// acceptedMessage extracts the {message} of a 202 answer.
func acceptedMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || strings.TrimSpace(payload.Message) == "" {
		return MsgRequestFailed
	}
	return payload.Message
}

// parseMessages reads the error body of the backend.
//
// Bodies look like {"email": ["E-Mail bereits vergeben!"], "detail": "..."}:
// a field maps to a message or a list of messages, lists may nest. Go maps
// lose key order, so the body is read token by token instead of being
// unmarshalled. Anything that is not JSON yields no messages.
func parseMessages(body []byte) []apperr.FieldError {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var details []apperr.FieldError
	collect := func(field string) func(string) {
		return func(message string) {
			if message = strings.TrimSpace(message); message != "" {
				details = append(details, apperr.FieldError{Field: field, Message: message})
			}
		}
	}

	first, err := decoder.Token()
	if err != nil {
		return nil
	}

	if delim, ok := first.(json.Delim); ok && delim == '{' {
		for decoder.More() {
			key, err := decoder.Token()
			if err != nil {
				return details
			}
			field, _ := key.(string)
			next, err := decoder.Token()
			if err != nil {
				return details
			}
			if err := walkValue(decoder, next, collect(field)); err != nil {
				return details
			}
		}
		return details
	}

	_ = walkValue(decoder, first, collect(""))
	return details
}

// walkValue emits every scalar reachable from token, depth first.
func walkValue(decoder *json.Decoder, token json.Token, emit func(string)) error {
	switch value := token.(type) {
	case string:
		emit(value)
	case json.Number:
		emit(value.String())
	case bool, nil:
		// Flags and nulls carry no message.
	case json.Delim:
		switch value {
		case '[':
			for decoder.More() {
				next, err := decoder.Token()
				if err != nil {
					return err
				}
				if err := walkValue(decoder, next, emit); err != nil {
					return err
				}
			}
		case '{':
			for decoder.More() {
				if _, err := decoder.Token(); err != nil {
					return err
				}
				next, err := decoder.Token()
				if err != nil {
					return err
				}
				if err := walkValue(decoder, next, emit); err != nil {
					return err
				}
			}
		default:
			return errors.New("kryptoapi: unexpected delimiter")
		}
		// Consume the closing delimiter.
		if _, err := decoder.Token(); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	return nil
}
