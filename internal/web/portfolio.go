// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"net/http"

	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	requestutil "github.com/taibuivan/kryptotracker/internal/platform/request"
	"github.com/taibuivan/kryptotracker/internal/platform/validate"
)

// Notifications of the portfolio pages.
const (
	MsgPortfolioCreated = "Portfolio erfolgreich erstellt! Weiterleitung..."
	MsgAssetAdded       = "Asset erfolgreich hinzugefügt! Weiterleitung..."
)

type dashboardPage struct {
	Dashboard  *kryptoapi.Dashboard
	TaxReports []kryptoapi.TaxReportResult
}

/*
GET /user/dashboard.

Description: Balances, holdings, the last transactions and the newest tax
reports of the account.
*/
func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Dashboard"}

	dashboard, err := handler.api.Dashboard(request.Context(), store(request))
	if err != nil {
		handler.fail(writer, request, "dashboard", page, err)
		return
	}

	page.Data = dashboardPage{Dashboard: dashboard, TaxReports: topTaxReports(dashboard.TaxReports)}
	handler.render(writer, request, http.StatusOK, "dashboard", page)
}

// # Portfolio

func (handler *Handler) portfolioForm(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Portfolio hinzufügen"}
	if !handler.loadPortfolioTypes(writer, request, &page) {
		return
	}
	handler.render(writer, request, http.StatusOK, "add_portfolio", page)
}

/*
POST /user/add-portfolio.

Request:
  - name: string (required)
  - portfolio_type: int
  - balance: decimal (optional, dot separated)
*/
func (handler *Handler) createPortfolio(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Portfolio hinzufügen"}
	if err := requestutil.ParseForm(request, maxFormMemory); err != nil {
		handler.fail(writer, request, "add_portfolio", page, err)
		return
	}
	page.Form = request.PostForm
	if !handler.loadPortfolioTypes(writer, request, &page) {
		return
	}

	input := kryptoapi.PortfolioInput{
		Name:            requestutil.Form(request, "name"),
		PortfolioTypeID: requestutil.FormInt(request, "portfolio_type"),
	}

	validator := &validate.Validator{}
	validator.Required("name", "Name", input.Name).MaxLen("name", input.Name, 100)
	parseNumbers(validator, numberField{requestutil.Form(request, "balance"), &input.Balance})
	if err := validator.Err(); err != nil {
		handler.fail(writer, request, "add_portfolio", page, err)
		return
	}

	if err := handler.api.CreatePortfolio(request.Context(), store(request), input); err != nil {
		handler.fail(writer, request, "add_portfolio", page, err)
		return
	}

	handler.succeed(writer, request, MsgPortfolioCreated, constants.RouteDashboard)
}

func (handler *Handler) loadPortfolioTypes(writer http.ResponseWriter, request *http.Request, page *view) bool {
	types, err := handler.api.PortfolioTypes(request.Context(), store(request))
	if err != nil {
		handler.fail(writer, request, "add_portfolio", *page, err)
		return false
	}
	page.Data = types
	return true
}

// # Asset

func (handler *Handler) assetForm(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Asset hinzufügen"}
	if !handler.loadPortfolios(writer, request, "add_asset", &page) {
		return
	}
	handler.render(writer, request, http.StatusOK, "add_asset", page)
}

/*
POST /user/add-asset.

Request:
  - portfolio: int
  - acronym, name: string (required)
  - quantityOwned, quantityPrice: decimal (dot separated)
*/
func (handler *Handler) addAsset(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Asset hinzufügen"}
	if err := requestutil.ParseForm(request, maxFormMemory); err != nil {
		handler.fail(writer, request, "add_asset", page, err)
		return
	}
	page.Form = request.PostForm
	if !handler.loadPortfolios(writer, request, "add_asset", &page) {
		return
	}

	input := kryptoapi.AssetInput{
		AssetAcronym: requestutil.Form(request, "acronym"),
		AssetName:    requestutil.Form(request, "name"),
		PortfolioID:  requestutil.FormInt(request, "portfolio"),
	}

	validator := &validate.Validator{}
	validator.Required("acronym", "Kürzel", input.AssetAcronym).
		Required("name", "Name", input.AssetName)
	parseNumbers(validator,
		numberField{requestutil.Form(request, "quantityOwned"), &input.QuantityOwned},
		numberField{requestutil.Form(request, "quantityPrice"), &input.QuantityPrice},
	)
	if err := validator.Err(); err != nil {
		handler.fail(writer, request, "add_asset", page, err)
		return
	}

	if err := handler.api.AddAsset(request.Context(), store(request), input); err != nil {
		handler.fail(writer, request, "add_asset", page, err)
		return
	}

	handler.succeed(writer, request, MsgAssetAdded, constants.RouteDashboard)
}

func (handler *Handler) loadPortfolios(writer http.ResponseWriter, request *http.Request, name string, page *view) bool {
	portfolios, err := handler.api.Portfolios(request.Context(), store(request))
	if err != nil {
		handler.fail(writer, request, name, *page, err)
		return false
	}
	page.Data = portfolios
	return true
}
