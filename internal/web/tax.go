// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"net/http"
	"time"

	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
	requestutil "github.com/taibuivan/kryptotracker/internal/platform/request"
	"github.com/taibuivan/kryptotracker/internal/platform/respond"
	"github.com/taibuivan/kryptotracker/internal/platform/validate"
)

// MsgTaxPeriodMissing asks for either a year or a complete range.
const MsgTaxPeriodMissing = "Bitte ein Steuerjahr oder einen Zeitraum angeben."

// firstTaxYear is the first year anything could have been traded.
const firstTaxYear = 2009

const dateLayout = "2006-01-02"

type taxPage struct {
	MinYear int
	MaxYear int
}

func newTaxPage() taxPage {
	return taxPage{MinYear: firstTaxYear, MaxYear: time.Now().Year()}
}

func (handler *Handler) taxForm(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "taxes", view{Title: "Steuern", Data: newTaxPage()})
}

/*
POST /user/taxes.

Request (one of):
  - taxYear: int
  - from, to: YYYY-MM-DD

Response:
  - 200: the PDF report as an attachment
  - 4xx: form re-rendered with the error lines
*/
func (handler *Handler) requestTaxReport(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Steuern", Data: newTaxPage()}
	if err := requestutil.ParseForm(request, maxFormMemory); err != nil {
		handler.fail(writer, request, "taxes", page, err)
		return
	}
	page.Form = request.PostForm

	input := kryptoapi.TaxReportInput{
		TaxYear: requestutil.FormInt(request, "taxYear"),
		From:    requestutil.Form(request, "from"),
		To:      requestutil.Form(request, "to"),
	}

	if err := validateTaxPeriod(input); err != nil {
		handler.fail(writer, request, "taxes", page, err)
		return
	}

	report, err := handler.api.RequestTaxReport(request.Context(), store(request), input)
	if err != nil {
		handler.fail(writer, request, "taxes", page, err)
		return
	}

	respond.Attachment(writer, report.ContentType, report.Filename, report.Body)
}

func validateTaxPeriod(input kryptoapi.TaxReportInput) error {
	validator := &validate.Validator{}

	if input.TaxYear != 0 {
		validator.Range("taxYear", input.TaxYear, firstTaxYear, time.Now().Year())
		return validator.Err()
	}

	if input.From == "" && input.To == "" {
		return validate.RequiredError("taxYear", MsgTaxPeriodMissing)
	}

	validator.Required("from", "Von", input.From).
		Required("to", "Bis", input.To).
		Date("from", "Von", input.From, dateLayout).
		Date("to", "Bis", input.To, dateLayout)
	if validator.HasErrors() {
		return validator.Err()
	}

	from, _ := time.Parse(dateLayout, input.From)
	to, _ := time.Parse(dateLayout, input.To)
	validator.Custom("to", to.Before(from), "Das Enddatum liegt vor dem Startdatum.")
	return validator.Err()
}

/*
GET /user/taxes/{id}/download.

Response:
  - 200: the PDF report as an attachment
  - 404: id is not a positive integer
*/
func (handler *Handler) downloadTaxReport(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id", "Steuerbericht")
	if err != nil {
		handler.notFound(writer, request)
		return
	}

	report, err := handler.api.DownloadTaxReport(request.Context(), store(request), id)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeValidation) && apperr.As(err).HTTPStatus == http.StatusNotFound {
			handler.notFound(writer, request)
			return
		}
		handler.fail(writer, request, "taxes", view{Title: "Steuern", Data: newTaxPage()}, err)
		return
	}

	respond.Attachment(writer, report.ContentType, report.Filename, report.Body)
}
