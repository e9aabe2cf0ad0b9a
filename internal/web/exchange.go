// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"net/http"

	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
	requestutil "github.com/taibuivan/kryptotracker/internal/platform/request"
	"github.com/taibuivan/kryptotracker/internal/platform/validate"
)

// Messages of the exchange API pages.
const (
	MsgExchangeAPIAdded      = "API-Schlüssel erfolgreich hinzugefügt."
	MsgExchangeKeyMissing    = "Bitte geben Sie ihren API-Key ein."
	MsgExchangeKrakenMissing = "Bitte geben Sie ihren API-Key und API-Secret ein."
)

// exchangeKraken needs a secret besides the key.
const exchangeKraken = "Kraken"

const routeExchangeAPIAdd = "/user/api/add"

/*
GET /user/api.

Description: The registered exchange keys with masked secrets.
*/
func (handler *Handler) listExchangeAPIs(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "API-Schlüssel"}

	keys, err := handler.api.ExchangeAPIs(request.Context(), store(request))
	if err != nil {
		handler.fail(writer, request, "exchange_apis", page, err)
		return
	}

	page.Data = keys
	handler.render(writer, request, http.StatusOK, "exchange_apis", page)
}

func (handler *Handler) exchangeAPIForm(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "add_exchange_api", view{Title: "API-Schlüssel hinzufügen", Data: exchanges})
}

/*
POST /user/api/add.

Request:
  - exchange: string
  - apiKey: string (required)
  - apiSec: string (required for Kraken)

Response:
  - 303: key stored, back to an empty form
  - 200: the backend refused the key, its message is shown on the form
*/
func (handler *Handler) addExchangeAPI(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "API-Schlüssel hinzufügen", Data: exchanges}
	if err := requestutil.ParseForm(request, maxFormMemory); err != nil {
		handler.fail(writer, request, "add_exchange_api", page, err)
		return
	}
	page.Form = request.PostForm

	input := kryptoapi.ExchangeAPIInput{
		Exchange:  requestutil.Form(request, "exchange"),
		APIKey:    requestutil.Form(request, "apiKey"),
		APISecret: requestutil.Form(request, "apiSec"),
	}

	validator := &validate.Validator{}
	validator.OneOf("exchange", input.Exchange, exchanges...)
	if input.Exchange == exchangeKraken {
		validator.Custom("apiKey", input.APIKey == "" || input.APISecret == "", MsgExchangeKrakenMissing)
	} else {
		validator.Custom("apiKey", input.APIKey == "", MsgExchangeKeyMissing)
	}
	if err := validator.Err(); err != nil {
		handler.fail(writer, request, "add_exchange_api", page, err)
		return
	}

	if err := handler.api.AddExchangeAPI(request.Context(), store(request), input); err != nil {
		handler.fail(writer, request, "add_exchange_api", page, err)
		return
	}

	handler.succeed(writer, request, MsgExchangeAPIAdded, routeExchangeAPIAdd)
}
