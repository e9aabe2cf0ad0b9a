// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kryptoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Label is a backend reference rendered as text.
//
// Depending on the serializer, the backend sends a foreign key as its id
// (a number), as its display name (a string) or as null.
type Label string

// UnmarshalJSON accepts strings, numbers and null.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = ""
	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*l = Label(text)
	default:
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return err
		}
		*l = Label(number.String())
	}
	return nil
}

// String implements [fmt.Stringer].
func (l Label) String() string { return string(l) }

// # Authentication

// LoginInput is the body of POST /api/login/.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the body of POST /api/register/.
type RegisterInput struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Password          string `json:"password"`
	PasswordConfirmed string `json:"passwordConfirmed"`
}

// UserUpdateInput is the body of PUT /api/user-edit/{token}. Empty profile
// fields are left unchanged by the backend.
type UserUpdateInput struct {
	Username          string `json:"username,omitempty"`
	Email             string `json:"email,omitempty"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	Password          string `json:"password"`
	PasswordConfirmed string `json:"passwordConfirmed"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// User is the authenticated account.
type User struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	DateJoined string `json:"date_joined"`
}

// # Dashboard

// Dashboard is the aggregate of GET /api/dashboard/.
type Dashboard struct {
	SumBalance       decimal.Decimal   `json:"sum_balance"`
	SpotBalance      decimal.Decimal   `json:"spot_balance"`
	StakingBalance   decimal.Decimal   `json:"staking_balance"`
	FirstTransaction string            `json:"first_transaction"`
	LastTransaction  string            `json:"last_transaction"`
	Transactions     TransactionStats  `json:"transactions"`
	SpotData         []Holding         `json:"spot_data"`
	StakingData      []Holding         `json:"staking_data"`
	LastTransactions []RecentActivity  `json:"last_five_transactions"`
	TaxReports       []TaxReportResult `json:"tax_reports,omitempty"`
}

// TransactionStats counts the transactions of the account.
type TransactionStats struct {
	Count     int `json:"count"`
	WithCoins int `json:"with_coins"`
}

// Holding is one asset row of a balance table.
type Holding struct {
	Acronym    string          `json:"acronym"`
	Image      string          `json:"img"`
	Amount     decimal.Decimal `json:"amount"`
	Price      decimal.Decimal `json:"price"`
	OwnedValue decimal.Decimal `json:"owned_value"`
	Trend      string          `json:"trend"`
}

// RecentActivity is one entry of the last-transactions list.
type RecentActivity struct {
	Date   string          `json:"tx_date"`
	Amount decimal.Decimal `json:"tx_amount"`
	Value  decimal.Decimal `json:"tx_value"`
	Type   Label           `json:"tx_type"`
	Asset  string          `json:"asset"`
}

// # Portfolios & Assets

// Portfolio is a container of owned assets.
type Portfolio struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	PortfolioType int             `json:"portfolio_type"`
	Balance       decimal.Decimal `json:"balance"`
}

// PortfolioType is a kind of portfolio (spot, staking, ...).
type PortfolioType struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// PortfolioInput is the body of POST /api/portfolio/.
type PortfolioInput struct {
	Name            string          `json:"name"`
	PortfolioTypeID int             `json:"portfolio_type_id"`
	Balance         decimal.Decimal `json:"balance"`
}

// AssetInput is the body of POST /api/asset-owned/.
type AssetInput struct {
	QuantityOwned decimal.Decimal `json:"quantity_owned"`
	QuantityPrice decimal.Decimal `json:"quantity_price"`
	AssetAcronym  string          `json:"asset_acronym"`
	AssetName     string          `json:"asset_name"`
	PortfolioID   int             `json:"portfolio_id"`
}

// # Transactions

// Transaction is one row of the transaction history.
type Transaction struct {
	ID               int                 `json:"id"`
	Type             Label               `json:"tx_type"`
	Asset            Label               `json:"asset"`
	Amount           decimal.Decimal     `json:"tx_amount"`
	Value            decimal.Decimal     `json:"tx_value"`
	Fee              decimal.NullDecimal `json:"tx_fee"`
	Date             string              `json:"tx_date"`
	Hash             string              `json:"tx_hash"`
	SenderAddress    string              `json:"tx_sender_address"`
	RecipientAddress string              `json:"tx_recipient_address"`
	Comment          Label               `json:"tx_comment"`
}

// TransactionType is a kind of transaction (buy, sell, staking, ...).
type TransactionType struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// TransactionInput is the body of POST /api/transaction/.
type TransactionInput struct {
	TransactionType    int             `json:"transactionType"`
	TransactionDate    string          `json:"transactionDate"`
	AssetName          string          `json:"assetName"`
	AssetAcronym       string          `json:"assetAcronym"`
	TargetAssetName    string          `json:"targetAssetName"`
	TargetAssetAcronym string          `json:"targetAssetAcronym"`
	Amount             decimal.Decimal `json:"amount"`
	Price              decimal.Decimal `json:"price"`
	TransactionFee     decimal.Decimal `json:"transactionFee"`
	TransactionHashID  string          `json:"transactionHashId"`
	SenderAddress      string          `json:"senderAddress"`
	RecipientAddress   string          `json:"recipientAddress"`
	Comment            string          `json:"comment"`
	Portfolio          int             `json:"portfolio"`
}

// Upload is one file of a multipart request.
type Upload struct {
	Filename string
	Content  io.Reader
}

// ImportInput is the body of POST /api/file-import/.
type ImportInput struct {
	Exchange string
	Trades   Upload
	Ledgers  Upload
}

// # Exchange API Keys

// ExchangeAPI is a registered exchange key pair.
type ExchangeAPI struct {
	ID           int    `json:"id"`
	ExchangeName string `json:"exchange_name"`
	APIKey       string `json:"api_key"`
	APISecret    string `json:"api_sec"`
	CreatedAt    string `json:"created_at"`
}

// MaskedKey hides all but the edges of the key.
func (e ExchangeAPI) MaskedKey() string { return maskSecret(e.APIKey) }

// MaskedSecret hides all but the edges of the secret.
func (e ExchangeAPI) MaskedSecret() string { return maskSecret(e.APISecret) }

func maskSecret(secret string) string {
	if len(secret) <= 7 {
		return secret
	}
	return secret[:5] + strings.Repeat("*", 10) + secret[len(secret)-2:]
}

// ExchangeAPIInput is the body of POST /api/exchange-api/.
type ExchangeAPIInput struct {
	Exchange  string `json:"exchange"`
	APIKey    string `json:"apiKey"`
	APISecret string `json:"apiSec,omitempty"`
}

// # Tax Reports

// TaxReportInput is the body of POST /api/tax-report/. Either TaxYear or
// the From/To range (YYYY-MM-DD) is set.
type TaxReportInput struct {
	TaxYear int    `json:"taxYear,omitempty"`
	From    string `json:"fromDate,omitempty"`
	To      string `json:"toDate,omitempty"`
}

// TaxReportResult summarises a generated report.
type TaxReportResult struct {
	ID        int             `json:"id"`
	Year      int             `json:"year"`
	CreatedAt string          `json:"created_at"`
	Earn      decimal.Decimal `json:"earn"`
}

// Report is a downloadable file produced by the backend.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}
