// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestRequestTaxReport_Attachment streams the PDF with its filename.
*/
func TestRequestTaxReport_Attachment(t *testing.T) {
	a := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 2023, body["taxYear"])

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, "%PDF-1.4")
	})
	a.login("abc123")

	recorder := a.post("/user/taxes", url.Values{"taxYear": {"2023"}})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Steuerbericht_2023.pdf"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4", recorder.Body.String())
}

/*
TestRequestTaxReport_Period validates the requested period locally.
*/
func TestRequestTaxReport_Period(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"nothing", url.Values{}, "Bitte ein Steuerjahr oder einen Zeitraum angeben."},
		{"year too early", url.Values{"taxYear": {"1999"}}, "Der Wert muss zwischen 2009"},
		{"half range", url.Values{"from": {"2023-01-01"}}, "Das Feld Bis darf nicht leer sein."},
		{"reversed range", url.Values{"from": {"2023-06-01"}, "to": {"2023-01-01"}}, "Das Enddatum liegt vor dem Startdatum."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newApp(t, func(w http.ResponseWriter, _ *http.Request) {})
			a.login("abc123")

			recorder := a.post("/user/taxes", tt.form)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.message)
			assert.Zero(t, a.calls.Load())
		})
	}
}

/*
TestDownloadTaxReport_InvalidID renders the 404 page.
*/
func TestDownloadTaxReport_InvalidID(t *testing.T) {
	a := newApp(t, func(w http.ResponseWriter, _ *http.Request) {})
	a.login("abc123")

	recorder := a.get("/user/taxes/abc/download")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Zero(t, a.calls.Load())
}
