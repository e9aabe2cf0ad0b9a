// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kryptoapi

import (
	"context"
	"net/http"

	"github.com/taibuivan/kryptotracker/internal/platform/apperr"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
)

// Login exchanges credentials for a token and stores it in th.
//
// A wrong password is an ordinary validation failure here, even though the
// backend answers 401: the call carries no token, so no session can expire.
func (c *Client) Login(ctx context.Context, th TokenHolder, input LoginInput) error {
	return c.authenticate(ctx, th, "/api/login/", input)
}

// Register creates an account and stores the returned token in th.
func (c *Client) Register(ctx context.Context, th TokenHolder, input RegisterInput) error {
	return c.authenticate(ctx, th, "/api/register/", input)
}

func (c *Client) authenticate(ctx context.Context, th TokenHolder, path string, input any) error {
	resp, err := c.do(ctx, th, call{method: http.MethodPost, path: path, body: input})
	if err != nil {
		return err
	}

	var payload tokenResponse
	if err := c.decode(ctx, resp, path, &payload); err != nil {
		return err
	}
	if payload.Token == "" {
		return apperr.NetworkError(MsgNetworkError, errEmptyToken)
	}

	th.SetToken(ctx, payload.Token)
	return nil
}

// Logout revokes the token at the backend. The token is cleared in th
// whatever the outcome, so a failed call never leaves the browser logged in.
func (c *Client) Logout(ctx context.Context, th TokenHolder) error {
	token := th.Token()
	defer func() {
		th.SetToken(ctx, "")
		c.invalidate(ctx, token)
	}()

	if token == "" {
		return nil
	}
	_, err := c.do(ctx, th, call{method: http.MethodPost, path: "/api/logout/", auth: true})
	return err
}

// CurrentUser returns the account of the token.
func (c *Client) CurrentUser(ctx context.Context, th TokenHolder) (*User, error) {
	const path = "/api/user-auth/"
	resp, err := c.do(ctx, th, call{method: http.MethodGet, path: path, auth: true, freshness: constants.CurrentUserFreshness})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Detail User `json:"detail"`
	}
	if err := c.decode(ctx, resp, path, &payload); err != nil {
		return nil, err
	}
	return &payload.Detail, nil
}

// UpdateUser edits the profile of the account. The backend addresses the
// account by its token in the path.
func (c *Client) UpdateUser(ctx context.Context, th TokenHolder, input UserUpdateInput) error {
	_, err := c.do(ctx, th, call{
		method:  http.MethodPut,
		path:    "/api/user-edit/" + th.Token(),
		logPath: "/api/user-edit/{token}",
		auth:    true,
		body:    input,
	})
	return err
}
