// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
form decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
	"github.com/taibuivan/kryptotracker/internal/platform/validate"
	"github.com/taibuivan/kryptotracker/pkg/convert"
)

/*
ParseForm parses an urlencoded or multipart form body.

Parameters:
  - request: *http.Request
  - maxMemory: int64 (bytes of multipart data kept in memory)

Returns:
  - error: validate.ErrInvalidForm if the body cannot be parsed, otherwise nil
*/
func ParseForm(request *http.Request, maxMemory int64) error {
	contentType := request.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := request.ParseMultipartForm(maxMemory); err != nil {
			return validate.ErrInvalidForm
		}
		return nil
	}
	if err := request.ParseForm(); err != nil {
		return validate.ErrInvalidForm
	}
	return nil
}

/*
Form returns the trimmed value of a parsed form field.

Passwords are the exception: use [RawForm] for them so leading or trailing
spaces stay part of the secret.
*/
func Form(request *http.Request, name string) string {
	return strings.TrimSpace(request.PostFormValue(name))
}

// RawForm returns a form field exactly as submitted.
func RawForm(request *http.Request, name string) string {
	return request.PostFormValue(name)
}

// FormInt returns a form field as an int, or 0 when empty or malformed.
func FormInt(request *http.Request, name string) int {
	return convert.ToInt(Form(request, name))
}

/*
FormFile returns the named upload from a parsed multipart form.

Returns:
  - io.ReadCloser: The file content (caller closes), nil when the field is missing
  - string: The original filename
  - error: apperr.ValidationError when the upload cannot be read
*/
func FormFile(request *http.Request, name string) (io.ReadCloser, string, error) {
	file, header, err := request.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", apperr.ValidationError("Datei konnte nicht gelesen werden.",
			apperr.FieldError{Field: name, Message: "Datei konnte nicht gelesen werden."})
	}
	return file, header.Filename, nil
}

/*
IntParam retrieves a named URL parameter as a positive integer id.

Returns:
  - int: The parsed id
  - error: apperr.NotFound when the segment is not a positive integer
*/
func IntParam(request *http.Request, name, resource string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil || value <= 0 {
		return 0, apperr.NotFound(resource)
	}
	return value, nil
}
