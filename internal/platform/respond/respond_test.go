// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
	"github.com/taibuivan/kryptotracker/internal/platform/respond"
)

/*
TestError_Envelope renders AppErrors and hides unexpected ones.
*/
func TestError_Envelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperr.ValidationError("x", apperr.FieldError{Field: "email", Message: "leer"}), http.StatusBadRequest, apperr.CodeValidation},
		{"network", apperr.NetworkError("offline", errors.New("dial")), http.StatusServiceUnavailable, apperr.CodeNetwork},
		{"plain", errors.New("boom"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope.Code)
			assert.NotContains(t, envelope.Error, "boom")
		})
	}
}

/*
TestHTML_TemplateFailure never leaks a partial page.
*/
func TestHTML_TemplateFailure(t *testing.T) {
	tmpl := template.Must(template.New("page").Parse(`<p>{{.Missing.Field}}</p>`))

	recorder := httptest.NewRecorder()
	respond.HTML(recorder, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, tmpl, "page", struct{ Missing *struct{ Field string } }{})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "<p>")
}

/*
TestRedirect_SeeOther uses 303 so forms are not re-posted.
*/
func TestRedirect_SeeOther(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Redirect(recorder, httptest.NewRequest(http.MethodPost, "/login", nil), "/user/dashboard")

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/user/dashboard", recorder.Header().Get("Location"))
}

/*
TestAttachment sets the download headers.
*/
func TestAttachment(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Attachment(recorder, "application/pdf", "Steuerbericht_2023.pdf", []byte("%PDF"))

	assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Steuerbericht_2023.pdf"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF", recorder.Body.String())
}
