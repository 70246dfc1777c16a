package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/naveenspark/financeflow/pkg/domain"
)

// DefaultTimeout bounds every request unless WithTimeout overrides it.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 1 << 20

// Client is the FinanceFlow API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*options)

type options struct {
	timeout   time.Duration
	transport http.RoundTripper
	log       zerolog.Logger
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithTransport sets the base transport beneath the interceptors.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		if rt != nil {
			o.transport = rt
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// New creates a new API client. Every request goes through auth, which may be nil
// for unauthenticated use.
func New(baseURL string, auth Authenticator, opts ...Option) *Client {
	o := options{
		timeout:   DefaultTimeout,
		transport: http.DefaultTransport,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: o.timeout,
			Transport: &sessionTransport{
				base: o.transport,
				auth: auth,
				log:  o.log,
			},
		},
	}
}

// --- Account methods ---

// ListAccounts returns the caller's accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := c.get(ctx, "/accounts", &accounts); err != nil {
		return nil, fmt.Errorf("client.ListAccounts: %w", err)
	}
	return accounts, nil
}

// CreateAccount creates a new account.
func (c *Client) CreateAccount(ctx context.Context, in domain.AccountInput) (*domain.Account, error) {
	var created domain.Account
	if err := c.post(ctx, "/accounts", in, &created); err != nil {
		return nil, fmt.Errorf("client.CreateAccount: %w", err)
	}
	return &created, nil
}

// UpdateAccount replaces an account's fields.
func (c *Client) UpdateAccount(ctx context.Context, id int64, in domain.AccountInput) (*domain.Account, error) {
	var updated domain.Account
	if err := c.doRequest(ctx, http.MethodPut, "/accounts/"+idPath(id), in, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateAccount: %w", err)
	}
	return &updated, nil
}

// DeleteAccount deletes an account.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/accounts/"+idPath(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteAccount: %w", err)
	}
	return nil
}

// GetAccountBalance returns the current balance of an account.
func (c *Client) GetAccountBalance(ctx context.Context, id int64) (*domain.AccountBalance, error) {
	var b domain.AccountBalance
	if err := c.get(ctx, "/accounts/"+idPath(id)+"/balance", &b); err != nil {
		return nil, fmt.Errorf("client.GetAccountBalance: %w", err)
	}
	return &b, nil
}

// --- Category methods ---

// ListCategories returns categories, filtered by type when typ is non-empty.
func (c *Client) ListCategories(ctx context.Context, typ domain.CategoryType) ([]domain.Category, error) {
	path := "/categories"
	if typ != "" {
		params := url.Values{}
		params.Set("type", string(typ))
		path += "?" + params.Encode()
	}
	var cats []domain.Category
	if err := c.get(ctx, path, &cats); err != nil {
		return nil, fmt.Errorf("client.ListCategories: %w", err)
	}
	return cats, nil
}

// --- Transaction methods ---

// ListTransactions returns the caller's transactions.
func (c *Client) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	if err := c.get(ctx, "/transactions", &txns); err != nil {
		return nil, fmt.Errorf("client.ListTransactions: %w", err)
	}
	return txns, nil
}

// CreateTransaction records a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, in domain.TransactionInput) (*domain.Transaction, error) {
	var created domain.Transaction
	if err := c.post(ctx, "/transactions", in, &created); err != nil {
		return nil, fmt.Errorf("client.CreateTransaction: %w", err)
	}
	return &created, nil
}

// UpdateTransaction replaces a transaction's fields.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, in domain.TransactionInput) (*domain.Transaction, error) {
	var updated domain.Transaction
	if err := c.doRequest(ctx, http.MethodPut, "/transactions/"+idPath(id), in, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateTransaction: %w", err)
	}
	return &updated, nil
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/transactions/"+idPath(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteTransaction: %w", err)
	}
	return nil
}

// GetTransactionSummary returns income and expense totals.
func (c *Client) GetTransactionSummary(ctx context.Context) (*domain.TransactionSummary, error) {
	var s domain.TransactionSummary
	if err := c.get(ctx, "/transactions/summary", &s); err != nil {
		return nil, fmt.Errorf("client.GetTransactionSummary: %w", err)
	}
	return &s, nil
}

// GetSpendingByCategory returns expense totals per category.
func (c *Client) GetSpendingByCategory(ctx context.Context) ([]domain.CategorySpending, error) {
	var rows []domain.CategorySpending
	if err := c.get(ctx, "/transactions/by-category", &rows); err != nil {
		return nil, fmt.Errorf("client.GetSpendingByCategory: %w", err)
	}
	return rows, nil
}

// --- Budget methods ---

// CurrentBudgets returns the budgets of the current month.
func (c *Client) CurrentBudgets(ctx context.Context) ([]domain.Budget, error) {
	var budgets []domain.Budget
	if err := c.get(ctx, "/budgets/current", &budgets); err != nil {
		return nil, fmt.Errorf("client.CurrentBudgets: %w", err)
	}
	return budgets, nil
}

// BudgetsByMonth returns the budgets of the given month (1-12) and year.
func (c *Client) BudgetsByMonth(ctx context.Context, month, year int) ([]domain.Budget, error) {
	params := url.Values{}
	params.Set("month", strconv.Itoa(month))
	params.Set("year", strconv.Itoa(year))

	var budgets []domain.Budget
	if err := c.get(ctx, "/budgets?"+params.Encode(), &budgets); err != nil {
		return nil, fmt.Errorf("client.BudgetsByMonth: %w", err)
	}
	return budgets, nil
}

// CreateBudget creates a new budget.
func (c *Client) CreateBudget(ctx context.Context, in domain.BudgetInput) (*domain.Budget, error) {
	var created domain.Budget
	if err := c.post(ctx, "/budgets", in, &created); err != nil {
		return nil, fmt.Errorf("client.CreateBudget: %w", err)
	}
	return &created, nil
}

// UpdateBudget replaces a budget's fields.
func (c *Client) UpdateBudget(ctx context.Context, id int64, in domain.BudgetInput) (*domain.Budget, error) {
	var updated domain.Budget
	if err := c.doRequest(ctx, http.MethodPut, "/budgets/"+idPath(id), in, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateBudget: %w", err)
	}
	return &updated, nil
}

// DeleteBudget deletes a budget.
func (c *Client) DeleteBudget(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/budgets/"+idPath(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteBudget: %w", err)
	}
	return nil
}

// --- Analytics ---

// MonthlyTrends returns income and expenses for the last n months (default 6).
func (c *Client) MonthlyTrends(ctx context.Context, months int) ([]domain.MonthlyTrend, error) {
	if months <= 0 {
		months = 6
	}
	var trends []domain.MonthlyTrend
	if err := c.get(ctx, "/analytics/monthly-trends?months="+strconv.Itoa(months), &trends); err != nil {
		return nil, fmt.Errorf("client.MonthlyTrends: %w", err)
	}
	return trends, nil
}

// CategoryTrends returns per-category spending for the last n months (default 6).
func (c *Client) CategoryTrends(ctx context.Context, months int) ([]domain.CategoryTrend, error) {
	if months <= 0 {
		months = 6
	}
	var trends []domain.CategoryTrend
	if err := c.get(ctx, "/analytics/category-trends?months="+strconv.Itoa(months), &trends); err != nil {
		return nil, fmt.Errorf("client.CategoryTrends: %w", err)
	}
	return trends, nil
}

// TopSpendingMonths returns the highest-spending months (default 5).
func (c *Client) TopSpendingMonths(ctx context.Context, limit int) ([]domain.SpendingMonth, error) {
	if limit <= 0 {
		limit = 5
	}
	var months []domain.SpendingMonth
	if err := c.get(ctx, "/analytics/top-spending-months?limit="+strconv.Itoa(limit), &months); err != nil {
		return nil, fmt.Errorf("client.TopSpendingMonths: %w", err)
	}
	return months, nil
}

// --- AI advisor ---

// Chat sends a question to the AI advisor and returns its answer.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var reply domain.ChatReply
	if err := c.post(ctx, "/ai/chat", domain.ChatRequest{Message: message}, &reply); err != nil {
		return "", fmt.Errorf("client.Chat: %w", err)
	}
	return reply.Response, nil
}

func idPath(id int64) string {
	return url.PathEscape(strconv.FormatInt(id, 10))
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	var contentType string
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, reqBody, contentType, out)
}

// send performs the request and decodes a successful response into out.
// A *string out receives the raw body text.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return parseErrorBody(resp.StatusCode, respBody)
	}

	switch out := out.(type) {
	case nil:
		return nil
	case *string:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		var s string
		if json.Unmarshal(data, &s) == nil {
			*out = s
		} else {
			*out = strings.TrimSpace(string(data))
		}
		return nil
	default:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}
