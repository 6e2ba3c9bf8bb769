// Package client provides an HTTP client for the Gramkosh API along with
// session persistence for the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gramkosh/internal/report"
)

// Village is a village as returned by the API.
type Village struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
}

// User is the authenticated user's profile.
type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	VillageID *uint  `json:"village_id,omitempty"`
}

// Budget is an annual village budget. Monetary amounts stay decimal strings
// until arithmetic is needed.
type Budget struct {
	ID             uint     `json:"id"`
	VillageID      uint     `json:"village_id"`
	Year           int      `json:"year"`
	TotalAllocated string   `json:"total_allocated"`
	Village        *Village `json:"village,omitempty"`
}

// Category is a budget category row.
type Category struct {
	ID              uint   `json:"id"`
	BudgetID        uint   `json:"budget_id"`
	CategoryName    string `json:"category_name"`
	AllocatedAmount string `json:"allocated_amount"`
}

// Expense is a recorded expense row.
type Expense struct {
	ID          uint   `json:"id"`
	CategoryID  uint   `json:"category_id"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
	VendorName  string `json:"vendor_name,omitempty"`
	ExpenseDate string `json:"expense_date"`
}

// CategoryRemaining reports the unspent balance of a category.
type CategoryRemaining struct {
	CategoryID      uint   `json:"category_id"`
	CategoryName    string `json:"category_name"`
	AllocatedAmount string `json:"allocated_amount"`
	TotalSpent      string `json:"total_spent"`
	Remaining       string `json:"remaining"`
}

// Summary holds the server's top-level dashboard figures.
type Summary struct {
	TotalAllocated string `json:"total_allocated"`
	TotalSpent     string `json:"total_spent"`
	Remaining      string `json:"remaining"`
	Villages       int64  `json:"villages"`
	Budgets        int64  `json:"budgets"`
	Categories     int64  `json:"categories"`
	Expenses       int64  `json:"expenses"`
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
	VillageID *uint  `json:"village_id,omitempty"`
}

// CreateVillageInput is the payload for creating a village.
type CreateVillageInput struct {
	Name     string `json:"name"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
}

// CreateBudgetInput is the payload for creating a budget.
type CreateBudgetInput struct {
	VillageID      uint   `json:"village_id"`
	Year           int    `json:"year"`
	TotalAllocated string `json:"total_allocated"`
}

// UpdateBudgetInput is the payload for updating a budget. Nil fields are left
// unchanged.
type UpdateBudgetInput struct {
	Year           *int    `json:"year,omitempty"`
	TotalAllocated *string `json:"total_allocated,omitempty"`
}

// CreateCategoryInput is the payload for creating a budget category.
type CreateCategoryInput struct {
	BudgetID        uint   `json:"budget_id"`
	CategoryName    string `json:"category_name"`
	AllocatedAmount string `json:"allocated_amount"`
}

// CreateExpenseInput is the payload for recording an expense.
type CreateExpenseInput struct {
	CategoryID  uint   `json:"category_id"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
	VendorName  string `json:"vendor_name,omitempty"`
	ExpenseDate string `json:"expense_date"`
}

// UpdateExpenseInput is the payload for updating an expense. Nil fields are
// left unchanged.
type UpdateExpenseInput struct {
	Description *string `json:"description,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	VendorName  *string `json:"vendor_name,omitempty"`
	ExpenseDate *string `json:"expense_date,omitempty"`
}

// APIError is a structured error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// ErrLoginRequired is returned when a call needing authentication is made
// without a stored session.
var ErrLoginRequired = fmt.Errorf("not logged in, run 'gramkosh login' first")

// Client communicates with the Gramkosh API.
type Client struct {
	baseURL    string
	store      SessionStore
	httpClient *http.Client
}

// New creates a Client against the given base URL. The session store supplies
// the bearer token for authenticated calls; pass nil httpClient for the
// default.
func New(baseURL string, store SessionStore, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: httpClient,
	}
}

// Session returns the currently stored session.
func (c *Client) Session() (*Session, error) {
	return c.store.Load()
}

// do performs a JSON request against the API and decodes the response into
// out. When auth is set, the stored session's token is attached and a missing
// session fails fast with ErrLoginRequired.
func (c *Client) do(ctx context.Context, method, path string, auth bool, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		session, err := c.store.Load()
		if err != nil {
			return fmt.Errorf("loading session: %w", err)
		}
		if !session.Authenticated() {
			return ErrLoginRequired
		}
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into an APIError, falling back to the
// bare status code when the body is not the expected error envelope.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Code = payload.Error.Code
		apiErr.Message = payload.Error.Message
	}
	return apiErr
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	var result struct {
		AccessToken string `json:"access_token"`
		User        User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", false, input, &result); err != nil {
		return nil, err
	}

	session := &Session{Token: result.AccessToken, User: result.User}
	if err := c.store.Save(session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return session, nil
}

// Login authenticates with email and password and stores the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var result struct {
		AccessToken string `json:"access_token"`
		User        User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", false, body, &result); err != nil {
		return nil, err
	}

	session := &Session{Token: result.AccessToken, User: result.User}
	if err := c.store.Save(session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return session, nil
}

// Logout clears the stored session.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var result struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/profile", true, nil, &result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// ListVillages fetches all villages. This endpoint is public.
func (c *Client) ListVillages(ctx context.Context) ([]Village, error) {
	var result struct {
		Data []Village `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/villages", false, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// MyVillage fetches the village the authenticated user belongs to.
func (c *Client) MyVillage(ctx context.Context) (*Village, error) {
	var result struct {
		Village Village `json:"village"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/villages/me", true, nil, &result); err != nil {
		return nil, err
	}
	return &result.Village, nil
}

// CreateVillage creates a new village. Admin only.
func (c *Client) CreateVillage(ctx context.Context, input CreateVillageInput) (*Village, error) {
	var result struct {
		Village Village `json:"village"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/villages", true, input, &result); err != nil {
		return nil, err
	}
	return &result.Village, nil
}

// DeleteVillage deletes a village. Admin only.
func (c *Client) DeleteVillage(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/villages/%d", id), true, nil, nil)
}

// ListBudgets fetches budgets visible to the authenticated user. Admins see
// all villages, villagers see their own.
func (c *Client) ListBudgets(ctx context.Context) ([]Budget, error) {
	var result struct {
		Data []Budget `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/budgets", true, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// ListVillageBudgets fetches the budgets of a single village.
func (c *Client) ListVillageBudgets(ctx context.Context, villageID uint) ([]Budget, error) {
	var result struct {
		Data []Budget `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/budgets/village/%d", villageID)
	if err := c.do(ctx, http.MethodGet, path, true, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// CreateBudget creates a new annual budget. Admin only.
func (c *Client) CreateBudget(ctx context.Context, input CreateBudgetInput) (*Budget, error) {
	var result struct {
		Budget Budget `json:"budget"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/budgets", true, input, &result); err != nil {
		return nil, err
	}
	return &result.Budget, nil
}

// UpdateBudget updates a budget. Admin only.
func (c *Client) UpdateBudget(ctx context.Context, id uint, input UpdateBudgetInput) (*Budget, error) {
	var result struct {
		Budget Budget `json:"budget"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/budgets/%d", id), true, input, &result); err != nil {
		return nil, err
	}
	return &result.Budget, nil
}

// DeleteBudget deletes a budget and its categories. Admin only.
func (c *Client) DeleteBudget(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/budgets/%d", id), true, nil, nil)
}

// ListCategories fetches all budget categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var result struct {
		Data []Category `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/categories", true, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// ListBudgetCategories fetches the categories of a single budget.
func (c *Client) ListBudgetCategories(ctx context.Context, budgetID uint) ([]Category, error) {
	var result struct {
		Data []Category `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/categories/budget/%d", budgetID)
	if err := c.do(ctx, http.MethodGet, path, true, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// CreateCategory creates a budget category. Admin only.
func (c *Client) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	var result struct {
		Category Category `json:"category"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/categories", true, input, &result); err != nil {
		return nil, err
	}
	return &result.Category, nil
}

// CategoryRemaining fetches the unspent balance of a category.
func (c *Client) CategoryRemaining(ctx context.Context, id uint) (*CategoryRemaining, error) {
	var result CategoryRemaining
	path := fmt.Sprintf("/api/v1/categories/%d/remaining", id)
	if err := c.do(ctx, http.MethodGet, path, true, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListExpenses fetches all expenses.
func (c *Client) ListExpenses(ctx context.Context) ([]Expense, error) {
	var result struct {
		Data []Expense `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/expenses", true, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// ListCategoryExpenses fetches the expenses recorded under a category.
func (c *Client) ListCategoryExpenses(ctx context.Context, categoryID uint) ([]Expense, error) {
	var result struct {
		Data []Expense `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/expenses/category/%d", categoryID)
	if err := c.do(ctx, http.MethodGet, path, true, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// CreateExpense records a new expense. Admin only.
func (c *Client) CreateExpense(ctx context.Context, input CreateExpenseInput) (*Expense, error) {
	var result struct {
		Expense Expense `json:"expense"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/expenses", true, input, &result); err != nil {
		return nil, err
	}
	return &result.Expense, nil
}

// UpdateExpense updates an expense. Admin only.
func (c *Client) UpdateExpense(ctx context.Context, id uint, input UpdateExpenseInput) (*Expense, error) {
	var result struct {
		Expense Expense `json:"expense"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/v1/expenses/%d", id), true, input, &result); err != nil {
		return nil, err
	}
	return &result.Expense, nil
}

// DeleteExpense deletes an expense. Admin only.
func (c *Client) DeleteExpense(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/expenses/%d", id), true, nil, nil)
}

// DashboardSummary fetches the server's dashboard figures.
func (c *Client) DashboardSummary(ctx context.Context) (*Summary, error) {
	var result struct {
		Summary Summary `json:"summary"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/dashboard/summary", true, nil, &result); err != nil {
		return nil, err
	}
	return &result.Summary, nil
}

// BudgetRecords converts fetched budgets into report rows.
func BudgetRecords(budgets []Budget) []report.BudgetRecord {
	records := make([]report.BudgetRecord, len(budgets))
	for i, b := range budgets {
		records[i] = report.BudgetRecord{
			ID:             b.ID,
			VillageID:      b.VillageID,
			Year:           b.Year,
			TotalAllocated: b.TotalAllocated,
		}
	}
	return records
}

// CategoryRecords converts fetched categories into report rows.
func CategoryRecords(categories []Category) []report.CategoryRecord {
	records := make([]report.CategoryRecord, len(categories))
	for i, cat := range categories {
		records[i] = report.CategoryRecord{
			ID:              cat.ID,
			BudgetID:        cat.BudgetID,
			CategoryName:    cat.CategoryName,
			AllocatedAmount: cat.AllocatedAmount,
		}
	}
	return records
}

// ExpenseRecords converts fetched expenses into report rows.
func ExpenseRecords(expenses []Expense) []report.ExpenseRecord {
	records := make([]report.ExpenseRecord, len(expenses))
	for i, e := range expenses {
		records[i] = report.ExpenseRecord{
			ID:          e.ID,
			CategoryID:  e.CategoryID,
			Amount:      e.Amount,
			ExpenseDate: e.ExpenseDate,
		}
	}
	return records
}
