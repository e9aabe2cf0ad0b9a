// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"io"
	"net/http"

	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	requestutil "github.com/taibuivan/kryptotracker/internal/platform/request"
	"github.com/taibuivan/kryptotracker/internal/platform/respond"
	"github.com/taibuivan/kryptotracker/internal/platform/validate"
)

// Messages of the transaction pages.
const (
	MsgTransactionCreated = "Transaktion erfolgreich erstellt! Weiterleitung..."
	MsgTransactionDeleted = "Transaktion erfolgreich gelöscht."
	MsgImportSuccess      = "Datenimport erfolgreich."
	MsgImportFilesMissing = "Bitte wählen Sie die ledgers.csv und trades.csv Dateien aus."
)

// transactionDateLayout is what a datetime-local input submits.
const transactionDateLayout = "2006-01-02T15:04"

const routeTransactions = "/user/transactions"

type transactionFormPage struct {
	Types      []kryptoapi.TransactionType
	Portfolios []kryptoapi.Portfolio
}

/*
GET /user/transactions.

Description: The transaction history of the account.
*/
func (handler *Handler) listTransactions(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Transaktionen"}

	transactions, err := handler.api.Transactions(request.Context(), store(request))
	if err != nil {
		handler.fail(writer, request, "transactions", page, err)
		return
	}

	page.Data = transactions
	handler.render(writer, request, http.StatusOK, "transactions", page)
}

// # Create

func (handler *Handler) transactionForm(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Transaktion hinzufügen"}
	if !handler.loadTransactionForm(writer, request, &page) {
		return
	}
	handler.render(writer, request, http.StatusOK, "add_transaction", page)
}

/*
POST /user/transactions/add.

Request:
  - transactionType, portfolio: int
  - transactionDate: datetime-local (required)
  - assetName, assetAcronym: string (required)
  - amount, price: decimal (required)
  - transactionFee: decimal (optional)
  - targetAssetName, targetAssetAcronym, transactionHashId,
    senderAddress, recipientAddress, comment: string (optional)
*/
func (handler *Handler) createTransaction(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Transaktion hinzufügen"}
	if err := requestutil.ParseForm(request, maxFormMemory); err != nil {
		handler.fail(writer, request, "add_transaction", page, err)
		return
	}
	page.Form = request.PostForm
	if !handler.loadTransactionForm(writer, request, &page) {
		return
	}

	input := kryptoapi.TransactionInput{
		TransactionType:    requestutil.FormInt(request, "transactionType"),
		TransactionDate:    requestutil.Form(request, "transactionDate"),
		AssetName:          requestutil.Form(request, "assetName"),
		AssetAcronym:       requestutil.Form(request, "assetAcronym"),
		TargetAssetName:    requestutil.Form(request, "targetAssetName"),
		TargetAssetAcronym: requestutil.Form(request, "targetAssetAcronym"),
		TransactionHashID:  requestutil.Form(request, "transactionHashId"),
		SenderAddress:      requestutil.Form(request, "senderAddress"),
		RecipientAddress:   requestutil.Form(request, "recipientAddress"),
		Comment:            requestutil.Form(request, "comment"),
		Portfolio:          requestutil.FormInt(request, "portfolio"),
	}

	validator := &validate.Validator{}
	validator.Required("transactionDate", "Datum und Uhrzeit", input.TransactionDate).
		Date("transactionDate", "Datum und Uhrzeit", input.TransactionDate, transactionDateLayout).
		Required("assetName", "Kryptowährung", input.AssetName).
		Required("assetAcronym", "Kürzel", input.AssetAcronym).
		Required("amount", "Anzahl", requestutil.Form(request, "amount")).
		Required("price", "Preis beim Handel", requestutil.Form(request, "price")).
		MaxLen("comment", input.Comment, 500)
	parseNumbers(validator,
		numberField{requestutil.Form(request, "amount"), &input.Amount},
		numberField{requestutil.Form(request, "price"), &input.Price},
		numberField{requestutil.Form(request, "transactionFee"), &input.TransactionFee},
	)
	if err := validator.Err(); err != nil {
		handler.fail(writer, request, "add_transaction", page, err)
		return
	}

	if err := handler.api.CreateTransaction(request.Context(), store(request), input); err != nil {
		handler.fail(writer, request, "add_transaction", page, err)
		return
	}

	handler.succeed(writer, request, MsgTransactionCreated, routeTransactions)
}

func (handler *Handler) loadTransactionForm(writer http.ResponseWriter, request *http.Request, page *view) bool {
	ctx := request.Context()

	types, err := handler.api.TransactionTypes(ctx, store(request))
	if err != nil {
		handler.fail(writer, request, "add_transaction", *page, err)
		return false
	}
	portfolios, err := handler.api.Portfolios(ctx, store(request))
	if err != nil {
		handler.fail(writer, request, "add_transaction", *page, err)
		return false
	}

	page.Data = transactionFormPage{Types: types, Portfolios: portfolios}
	return true
}

/*
POST /user/transactions/{id}/delete.

Response:
  - 303: back to the transaction list
  - 404: id is not a positive integer
*/
func (handler *Handler) deleteTransaction(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id", "Transaktion")
	if err != nil {
		handler.notFound(writer, request)
		return
	}

	if err := handler.api.DeleteTransaction(request.Context(), store(request), id); err != nil {
		if kryptoapi.IsSessionExpired(err) {
			handler.sessionExpired(writer, request)
			return
		}
		store(request).SetNotification(respond.Normalize(request, err).Messages()[0])
		respond.Redirect(writer, request, routeTransactions)
		return
	}

	handler.succeed(writer, request, MsgTransactionDeleted, routeTransactions)
}

// # Import

func (handler *Handler) importForm(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "import", view{Title: "Datenimport", Data: exchanges})
}

/*
POST /user/transactions/import.

Request (multipart):
  - exchange: string
  - csvFile: trades.csv
  - csvFile2: ledgers.csv

Response:
  - 303: imported, redirect to the dashboard
  - 200: the backend refused the files, its message is shown on the form
*/
func (handler *Handler) importCSV(writer http.ResponseWriter, request *http.Request) {
	page := view{Title: "Datenimport", Data: exchanges}

	request.Body = http.MaxBytesReader(writer, request.Body, 2*constants.MaxImportUploadBytes+maxFormMemory)
	if err := requestutil.ParseForm(request, maxFormMemory); err != nil {
		handler.fail(writer, request, "import", page, err)
		return
	}
	if request.MultipartForm != nil {
		defer func() { _ = request.MultipartForm.RemoveAll() }()
	}
	page.Form = request.PostForm

	trades, tradesName, err := requestutil.FormFile(request, "csvFile")
	if err != nil {
		handler.fail(writer, request, "import", page, err)
		return
	}
	ledgers, ledgersName, err := requestutil.FormFile(request, "csvFile2")
	if err != nil {
		closeAll(trades)
		handler.fail(writer, request, "import", page, err)
		return
	}
	defer closeAll(trades, ledgers)

	validator := &validate.Validator{}
	validator.Custom("csvFile", trades == nil || ledgers == nil, MsgImportFilesMissing)
	if err := validator.Err(); err != nil {
		handler.fail(writer, request, "import", page, err)
		return
	}

	input := kryptoapi.ImportInput{
		Exchange: requestutil.Form(request, "exchange"),
		Trades:   kryptoapi.Upload{Filename: tradesName, Content: trades},
		Ledgers:  kryptoapi.Upload{Filename: ledgersName, Content: ledgers},
	}
	if err := handler.api.ImportCSV(request.Context(), store(request), input); err != nil {
		handler.fail(writer, request, "import", page, err)
		return
	}

	handler.succeed(writer, request, MsgImportSuccess, constants.RouteDashboard)
}

func closeAll(closers ...io.Closer) {
	for _, closer := range closers {
		if closer != nil {
			_ = closer.Close()
		}
	}
}
