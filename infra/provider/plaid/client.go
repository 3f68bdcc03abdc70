// Package plaid implements provider.BankingProvider on top of the Plaid REST API.
package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/provider"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	sandboxBaseURL     = "https://sandbox.plaid.com"
	developmentBaseURL = "https://development.plaid.com"
	productionBaseURL  = "https://production.plaid.com"

	apiVersion = "2020-09-14"
	pageSize   = 500
)

// APIError is a non-2xx response from Plaid.
type APIError struct {
	StatusCode   int
	ErrorType    string
	ErrorCode    string
	ErrorMessage string
	RequestID    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("plaid %d %s/%s: %s", e.StatusCode, e.ErrorType, e.ErrorCode, e.ErrorMessage)
}

func (e *APIError) Unwrap() error { return domain.ErrUpstreamUnavailable }

// Client talks to Plaid, retrying transient failures.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string
	logger     *slog.Logger
}

// NewClient builds a client for the configured Plaid environment.
// An explicit BaseURL overrides the environment.
func NewClient(cfg *config.Plaid, logger *slog.Logger) (*Client, error) {
	if cfg.ClientID == "" || cfg.Secret == "" {
		return nil, fmt.Errorf("plaid client id and secret are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		switch strings.ToLower(cfg.Env) {
		case "production":
			baseURL = productionBaseURL
		case "development":
			baseURL = developmentBaseURL
		default:
			baseURL = sandboxBaseURL
		}
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = logger
	httpClient := retryClient.StandardClient()
	httpClient.Timeout = cfg.HTTPTimeout

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   cfg.ClientID,
		secret:     cfg.Secret,
		logger:     logger,
	}, nil
}

// FetchTransactions implements provider.BankingProvider. It pages through
// /transactions/get until every transaction in the range is read.
func (c *Client) FetchTransactions(
	ctx context.Context,
	accessToken string,
	start, end time.Time,
) ([]provider.BankTransaction, error) {
	var out []provider.BankTransaction
	offset := 0
	for {
		resp, err := doPost[transactionsGetResponse](ctx, c, "/transactions/get", map[string]any{
			"access_token": accessToken,
			"start_date":   start.Format(time.DateOnly),
			"end_date":     end.Format(time.DateOnly),
			"options": transactionsGetOptions{
				Count:                          pageSize,
				Offset:                         offset,
				IncludePersonalFinanceCategory: true,
			},
		})
		if err != nil {
			return nil, err
		}
		for _, t := range resp.Transactions {
			bt, err := toBankTransaction(t)
			if err != nil {
				c.logger.Warn("Skipping transaction with invalid date", "transaction_id", t.TransactionID, "error", err)
				continue
			}
			out = append(out, bt)
		}
		offset += len(resp.Transactions)
		if len(resp.Transactions) == 0 || offset >= resp.TotalTransactions {
			break
		}
	}
	c.logger.Debug("Fetched Plaid transactions", "count", len(out))
	return out, nil
}

// FetchAccounts implements provider.BankingProvider with /accounts/get.
func (c *Client) FetchAccounts(ctx context.Context, accessToken string) ([]provider.BankAccount, error) {
	resp, err := doPost[accountsGetResponse](ctx, c, "/accounts/get", map[string]any{
		"access_token": accessToken,
	})
	if err != nil {
		return nil, err
	}
	out := make([]provider.BankAccount, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		out = append(out, provider.BankAccount{
			AccountID:        a.AccountID,
			Name:             a.Name,
			OfficialName:     a.OfficialName,
			Type:             a.Type,
			Subtype:          a.Subtype,
			Mask:             a.Mask,
			CurrentBalance:   a.Balances.Current,
			AvailableBalance: a.Balances.Available,
			CurrencyCode:     a.Balances.IsoCurrencyCode,
		})
	}
	c.logger.Debug("Fetched Plaid accounts", "count", len(out))
	return out, nil
}

func toBankTransaction(t plaidTransaction) (provider.BankTransaction, error) {
	date, err := time.Parse(time.DateOnly, t.Date)
	if err != nil {
		return provider.BankTransaction{}, err
	}
	bt := provider.BankTransaction{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Amount:        t.Amount,
		Date:          date,
		Name:          t.Name,
		MerchantName:  t.MerchantName,
		Category:      t.Category,
		Pending:       t.Pending,
	}
	if t.PersonalFinanceCategory != nil {
		bt.PersonalFinanceCategory = &provider.PersonalFinanceCategory{
			Primary:  t.PersonalFinanceCategory.Primary,
			Detailed: t.PersonalFinanceCategory.Detailed,
		}
	}
	return bt, nil
}

func doPost[Resp any](ctx context.Context, c *Client, path string, reqBody map[string]any) (*Resp, error) {
	reqBody["client_id"] = c.clientID
	reqBody["secret"] = c.secret

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Plaid-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp)
	}

	var result Resp
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.ErrorType != "" {
		apiErr.ErrorType = errResp.ErrorType
		apiErr.ErrorCode = errResp.ErrorCode
		apiErr.ErrorMessage = errResp.ErrorMessage
		apiErr.RequestID = errResp.RequestID
	} else {
		apiErr.ErrorMessage = strings.TrimSpace(string(body))
	}
	return apiErr
}
