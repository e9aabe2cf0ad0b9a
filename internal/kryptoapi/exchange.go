// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kryptoapi

import (
	"context"
	"net/http"

	"github.com/taibuivan/kryptotracker/internal/platform/constants"
)

// ExchangeAPIs lists the registered exchange keys. No keys is an empty
// list, whether the backend answers 204 or [].
func (c *Client) ExchangeAPIs(ctx context.Context, th TokenHolder) ([]ExchangeAPI, error) {
	var keys []ExchangeAPI
	err := c.get(ctx, th, "/api/exchange-api/", constants.ExchangeAPIFreshness, &keys)
	return keys, err
}

// AddExchangeAPI registers an exchange key. Like [Client.ImportCSV], a 202
// answer is a refusal.
func (c *Client) AddExchangeAPI(ctx context.Context, th TokenHolder, input ExchangeAPIInput) error {
	_, err := c.do(ctx, th, call{
		method:     http.MethodPost,
		path:       "/api/exchange-api/",
		auth:       true,
		body:       input,
		rejectable: true,
	})
	return err
}
