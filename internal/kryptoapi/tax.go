// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kryptoapi

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/pkg/slug"
)

const reportContentType = "application/pdf"

// RequestTaxReport generates a report for a tax year or a date range and
// returns the PDF.
func (c *Client) RequestTaxReport(ctx context.Context, th TokenHolder, input TaxReportInput) (*Report, error) {
	resp, err := c.do(ctx, th, call{method: http.MethodPost, path: "/api/tax-report/", auth: true, body: input})
	if err != nil {
		return nil, err
	}

	name := "Steuerbericht"
	if input.TaxYear > 0 {
		name += "_" + strconv.Itoa(input.TaxYear)
	} else {
		name += "_" + input.From + "_" + input.To
	}
	return newReport(resp, name), nil
}

// DownloadTaxReport returns an existing report. Reports are immutable but
// large, so they are never cached.
func (c *Client) DownloadTaxReport(ctx context.Context, th TokenHolder, id int) (*Report, error) {
	resp, err := c.do(ctx, th, call{method: http.MethodGet, path: "/api/tax-report/" + strconv.Itoa(id), auth: true})
	if err != nil {
		return nil, err
	}
	return newReport(resp, fmt.Sprintf("Steuerbericht_%d", id)), nil
}

func newReport(resp *response, name string) *Report {
	contentType := resp.header.Get(constants.HeaderContentType)
	if mediaType, _, err := mime.ParseMediaType(contentType); err != nil || mediaType == "application/json" {
		contentType = reportContentType
	}
	return &Report{
		Filename:    slug.Filename(name + ".pdf"),
		ContentType: contentType,
		Body:        resp.body,
	}
}
