package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"mbbank-monitor/internal/config"
	"mbbank-monitor/internal/model"
	"mbbank-monitor/pkg/logger"
)

const historyPath = "/api/retail-transactionms/transactionms/get-account-transaction-history"

// dateLayout is the dd/mm/yyyy format the MB Bank API expects
const dateLayout = "02/01/2006"

// Client is a thin MB Bank API client. It only covers the account
// transaction history call the monitor needs; session handling beyond
// basic credentials is out of scope.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accountNo  string
	username   string
	password   string
	deviceID   string
	logger     *logger.Logger
}

// NewClient creates a new MB Bank API client
func NewClient(cfg *config.BankConfig, username, password string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accountNo: cfg.AccountInfo,
		username:  username,
		password:  password,
		deviceID:  uuid.NewString(),
		logger:    log,
	}
}

type historyRequest struct {
	AccountNo string `json:"accountNo"`
	FromDate  string `json:"fromDate"`
	ToDate    string `json:"toDate"`
	DeviceID  string `json:"deviceIdCommon"`
	RefNo     string `json:"refNo"`
}

type historyResponse struct {
	Result struct {
		ResponseCode string `json:"responseCode"`
		Message      string `json:"message"`
		OK           bool   `json:"ok"`
	} `json:"result"`
	TransactionHistoryList []model.Transaction `json:"transactionHistoryList"`
}

// TransactionHistory fetches the account history between from and to,
// newest first as returned by the upstream API.
func (c *Client) TransactionHistory(ctx context.Context, from, to time.Time) (*model.TransactionHistory, error) {
	reqBody := historyRequest{
		AccountNo: c.accountNo,
		FromDate:  from.Format(dateLayout),
		ToDate:    to.Format(dateLayout),
		DeviceID:  c.deviceID,
		RefNo:     fmt.Sprintf("%s-%d", strings.ToUpper(c.username), time.Now().UnixMilli()),
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+historyPath, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "mbbank-monitor/1.0")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, &APIError{Kind: KindTimeout, Message: err.Error()}
		}
		return nil, &APIError{Kind: KindUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, &APIError{Kind: KindUnavailable, Status: resp.StatusCode, Message: "503 service unavailable"}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &APIError{Kind: KindAuth, Status: resp.StatusCode, Message: "authentication rejected"}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &APIError{Kind: KindOther, Status: resp.StatusCode,
			Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode)}
	}

	// The API serves an HTML maintenance page with a 200 during outages
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return nil, &APIError{Kind: KindBadContentType, Status: resp.StatusCode,
			Message: fmt.Sprintf("unexpected content type: %q", ct)}
	}

	var body historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &APIError{Kind: KindBadContentType, Status: resp.StatusCode,
			Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	if body.Result.ResponseCode != "" && body.Result.ResponseCode != "00" && !body.Result.OK {
		return nil, &APIError{Kind: KindOther, Status: resp.StatusCode,
			Message: fmt.Sprintf("API error %s: %s", body.Result.ResponseCode, body.Result.Message)}
	}

	return &model.TransactionHistory{TransactionHistoryList: body.TransactionHistoryList}, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
