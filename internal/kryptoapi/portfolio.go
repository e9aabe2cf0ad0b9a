// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kryptoapi

import (
	"context"
	"net/http"
	"time"

	"github.com/taibuivan/kryptotracker/internal/platform/constants"
)

// Dashboard returns the account overview.
func (c *Client) Dashboard(ctx context.Context, th TokenHolder) (*Dashboard, error) {
	var dashboard Dashboard
	if err := c.get(ctx, th, "/api/dashboard/", constants.DashboardFreshness, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Portfolios lists the portfolios of the account.
func (c *Client) Portfolios(ctx context.Context, th TokenHolder) ([]Portfolio, error) {
	var portfolios []Portfolio
	err := c.get(ctx, th, "/api/portfolio/", constants.PortfolioFreshness, &portfolios)
	return portfolios, err
}

// CreatePortfolio adds a portfolio.
func (c *Client) CreatePortfolio(ctx context.Context, th TokenHolder, input PortfolioInput) error {
	_, err := c.do(ctx, th, call{method: http.MethodPost, path: "/api/portfolio/", auth: true, body: input})
	return err
}

// PortfolioTypes lists the selectable portfolio kinds.
func (c *Client) PortfolioTypes(ctx context.Context, th TokenHolder) ([]PortfolioType, error) {
	var types []PortfolioType
	err := c.get(ctx, th, "/api/portfolio-type/", constants.PortfolioTypeFreshness, &types)
	return types, err
}

// AddAsset records an owned asset in a portfolio.
func (c *Client) AddAsset(ctx context.Context, th TokenHolder, input AssetInput) error {
	_, err := c.do(ctx, th, call{method: http.MethodPost, path: "/api/asset-owned/", auth: true, body: input})
	return err
}

// get fetches an authenticated, cacheable JSON resource into target. A 204
// leaves target untouched, which reads as an empty list.
func (c *Client) get(ctx context.Context, th TokenHolder, path string, freshness time.Duration, target any) error {
	resp, err := c.do(ctx, th, call{method: http.MethodGet, path: path, auth: true, freshness: freshness})
	if err != nil {
		return err
	}
	if resp.status == http.StatusNoContent || len(resp.body) == 0 {
		return nil
	}
	return c.decode(ctx, resp, path, target)
}
