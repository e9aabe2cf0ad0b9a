// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kryptoapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
)

// Transactions lists the transaction history.
func (c *Client) Transactions(ctx context.Context, th TokenHolder) ([]Transaction, error) {
	var transactions []Transaction
	err := c.get(ctx, th, "/api/transaction/", constants.TransactionFreshness, &transactions)
	return transactions, err
}

// CreateTransaction records a transaction.
func (c *Client) CreateTransaction(ctx context.Context, th TokenHolder, input TransactionInput) error {
	_, err := c.do(ctx, th, call{method: http.MethodPost, path: "/api/transaction/", auth: true, body: input})
	return err
}

// DeleteTransaction removes transaction id.
func (c *Client) DeleteTransaction(ctx context.Context, th TokenHolder, id int) error {
	_, err := c.do(ctx, th, call{method: http.MethodDelete, path: "/api/transaction/" + strconv.Itoa(id), auth: true})
	return err
}

// TransactionTypes lists the selectable transaction kinds.
func (c *Client) TransactionTypes(ctx context.Context, th TokenHolder) ([]TransactionType, error) {
	var types []TransactionType
	err := c.get(ctx, th, "/api/transaction-type/", constants.TransactionTypeFreshness, &types)
	return types, err
}

// ImportCSV uploads exchange exports. A 202 answer means the backend
// refused the files (for example a duplicate import) and is returned as
// [apperr.Rejected] carrying the backend's message.
func (c *Client) ImportCSV(ctx context.Context, th TokenHolder, input ImportInput) error {
	upload, err := newImportBody(input)
	if err != nil {
		return apperr.Internal(err)
	}

	_, err = c.do(ctx, th, call{
		method:     http.MethodPost,
		path:       "/api/file-import/",
		auth:       true,
		upload:     upload,
		rejectable: true,
	})
	return err
}
