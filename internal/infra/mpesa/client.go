package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Daraja APIのタイムスタンプ形式（YYYYMMDDHHMMSS）
const TimestampLayout = "20060102150405"

const (
	oauthPath    = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath  = "/mpesa/stkpush/v1/processrequest"
	stkQueryPath = "/mpesa/stkpushquery/v1/query"
)

// Configは認証情報と接続先。グローバル設定は読まず、生成時に全部渡す。
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	BaseURL        string // https://sandbox.safaricom.co.ke
	CallbackURL    string
	Timeout        time.Duration
}

// ClientはDaraja（STK push / query）のHTTPクライアント。
type Client struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

type STKPushInput struct {
	PhoneNumber      string
	Amount           int64 // Darajaは整数額のみ受ける
	AccountReference string
	TransactionDesc  string
}

type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type STKQueryResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AccessToken はconsumer key/secretを短命のbearerトークンに交換する。
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+oauthPath, nil)
	if err != nil {
		return "", err
	}

	credentials := c.cfg.ConsumerKey + ":" + c.cfg.ConsumerSecret
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(credentials)))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mpesa auth: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("mpesa auth: status %d: %s", res.StatusCode, string(body))
	}

	var out accessTokenResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("mpesa auth: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("mpesa auth: empty access_token")
	}
	return out.AccessToken, nil
}

// Password はbase64(Shortcode+Passkey+Timestamp)。
func Password(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

// STKPush は支払いプロンプトを顧客の端末に送る。
// 成否にかかわらず台帳への書き込みはしない（呼び出し側の責務）。
func (c *Client) STKPush(ctx context.Context, in STKPushInput) (STKPushResponse, error) {
	timestamp := c.now().Format(TimestampLayout)

	payload := map[string]interface{}{
		"BusinessShortCode": c.cfg.ShortCode,
		"Password":          Password(c.cfg.ShortCode, c.cfg.Passkey, timestamp),
		"Timestamp":         timestamp,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            in.Amount,
		"PartyA":            in.PhoneNumber,
		"PartyB":            c.cfg.ShortCode,
		"PhoneNumber":       in.PhoneNumber,
		"CallBackURL":       c.cfg.CallbackURL,
		"AccountReference":  in.AccountReference,
		"TransactionDesc":   in.TransactionDesc,
	}

	var out STKPushResponse
	if err := c.postJSON(ctx, stkPushPath, payload, &out); err != nil {
		return STKPushResponse{}, err
	}

	if out.CheckoutRequestID == "" {
		return STKPushResponse{}, fmt.Errorf("mpesa push rejected: %s", out.ResponseDescription)
	}
	return out, nil
}

// STKQuery はpushの現在状態を問い合わせる。読み取り専用。
func (c *Client) STKQuery(ctx context.Context, checkoutRequestID string) (STKQueryResponse, error) {
	timestamp := c.now().Format(TimestampLayout)

	payload := map[string]interface{}{
		"BusinessShortCode": c.cfg.ShortCode,
		"Password":          Password(c.cfg.ShortCode, c.cfg.Passkey, timestamp),
		"Timestamp":         timestamp,
		"CheckoutRequestID": checkoutRequestID,
	}

	var out STKQueryResponse
	if err := c.postJSON(ctx, stkQueryPath, payload, &out); err != nil {
		return STKQueryResponse{}, err
	}
	return out, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mpesa request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mpesa request: status %d: %s", res.StatusCode, string(b))
	}

	return json.NewDecoder(res.Body).Decode(out)
}
