package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// 起動済みサーバーに対して実行する。BASE_URL未設定ならスキップ
func requireServer(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		t.Skip("BASE_URL not set; skipping e2e")
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type OrderItemDTO struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
}

type OrderDTO struct {
	ID         string         `json:"id"`
	WebsiteID  string         `json:"website_id"`
	BuyerID    string         `json:"buyer_id"`
	Status     string         `json:"status"`
	TotalPrice string         `json:"total_price"`
	Items      []OrderItemDTO `json:"items"`
}

type ItemDTO struct {
	ID        string `json:"id"`
	WebsiteID string `json:"website_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

type CartLineDTO struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartDTO struct {
	Items []CartLineDTO `json:"items"`
	Total string        `json:"total"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	headers map[string]string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecode(t *testing.T, body []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, string(body))
	}
}

// =====================
// トークン発行（IAMの代わりにテスト側で署名する）
// =====================

func jwtSecret(t *testing.T) []byte {
	t.Helper()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		t.Skip("JWT_SECRET not set; skipping e2e")
	}
	return []byte(secret)
}

func signClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(jwtSecret(t))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return signed
}

func buyerToken(t *testing.T, buyerID string) string {
	t.Helper()
	return signClaims(t, jwt.MapClaims{
		"sub":  buyerID,
		"role": "BUYER",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
}

func sellerToken(t *testing.T, sellerID string, websiteID string) string {
	t.Helper()
	return signClaims(t, jwt.MapClaims{
		"sub":        sellerID,
		"role":       "SELLER",
		"website_id": websiteID,
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
}

func newUUID() string {
	return uuid.NewString()
}
