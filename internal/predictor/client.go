// File: internal/predictor/client.go
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"enhealth/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer  = "enhealth"
	tokenTTL     = time.Minute
	maxBodyBytes = 1 << 20
)

var (
	ErrUnavailable      = errors.New("prediction service unavailable")
	ErrUnknownCondition = errors.New("unknown condition")
)

// UpstreamError 預測服務回傳非 2xx
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("predictor returned %d: %s", e.Status, e.Message)
}

var timeNow = time.Now

// Client 把評估表單轉送到 ML 預測服務
type Client struct {
	baseURL string
	secret  []byte
	http    *http.Client
}

// New 建立指向 baseURL 的 client；secret 為空時不帶 Authorization header
func New(baseURL, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  []byte(secret),
		http:    &http.Client{Timeout: timeout},
	}
}

// serviceToken 簽發短效 HS256 token，sub 為發出請求的使用者 id
func (c *Client) serviceToken(userID int64) (string, error) {
	now := timeNow()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Predict 將 body POST 到 <base>/<condition>，2xx 時原樣回傳上游 JSON
func (c *Client) Predict(ctx context.Context, condition string, body []byte, userID int64) ([]byte, error) {
	if !model.IsAssessmentType(condition) {
		return nil, ErrUnknownCondition
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+condition, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("Predict: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if len(c.secret) > 0 {
		tok, err := c.serviceToken(userID)
		if err != nil {
			return nil, fmt.Errorf("Predict: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: upstreamMessage(raw)}
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON from predictor", ErrUnavailable)
	}
	return raw, nil
}

func upstreamMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return "Prediction failed"
}
