// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kryptoapi

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/taibuivan/kryptotracker/internal/platform/constants"
)

// Multipart field names of the file import endpoint.
const (
	fieldTrades   = "csvFile"
	fieldLedgers  = "csvFile2"
	fieldExchange = "exchange"
)

// multipartBody is an encoded multipart/form-data payload. It is buffered
// so the request can be rebuilt without re-reading the uploads.
type multipartBody struct {
	contentType string
	payload     []byte
}

func newImportBody(input ImportInput) (*multipartBody, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	if input.Exchange != "" {
		if err := writer.WriteField(fieldExchange, input.Exchange); err != nil {
			return nil, err
		}
	}

	files := []struct {
		field  string
		upload Upload
	}{
		{fieldTrades, input.Trades},
		{fieldLedgers, input.Ledgers},
	}
	for _, file := range files {
		if file.upload.Content == nil {
			continue
		}
		part, err := writer.CreateFormFile(file.field, file.upload.Filename)
		if err != nil {
			return nil, err
		}
		written, err := io.Copy(part, io.LimitReader(file.upload.Content, constants.MaxImportUploadBytes+1))
		if err != nil {
			return nil, fmt.Errorf("copy %s: %w", file.field, err)
		}
		if written > constants.MaxImportUploadBytes {
			return nil, fmt.Errorf("%s exceeds %d bytes", file.field, constants.MaxImportUploadBytes)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return &multipartBody{contentType: writer.FormDataContentType(), payload: buffer.Bytes()}, nil
}
