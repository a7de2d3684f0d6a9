package betty

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"betty_server_go/metrics"

	log "github.com/sirupsen/logrus"
)

// APIKeyHeader - заголовок, в котором Betty ожидает токен.
const APIKeyHeader = "X-Betty-Api-Key"

// ErrImageNotFound - Betty не знает изображения с таким ID.
var ErrImageNotFound = errors.New("betty: image not found")

// APIError - ответ Betty с неожиданным статусом.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("betty %s: unexpected status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Service - операции с удаленным API изображений, которые нужны серверу.
type Service interface {
	GetImage(ctx context.Context, id int64) (*Image, error)
	Upload(ctx context.Context, name string, file io.Reader) (*Image, error)
	UpdateImage(ctx context.Context, id int64, update ImageUpdate) (*Image, error)
}

// Options - настройки клиента Betty.
type Options struct {
	BaseURL      string
	PublicToken  string
	PrivateToken string
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// Client - HTTP клиент Betty API.
type Client struct {
	baseURL      string
	publicToken  string
	privateToken string
	httpClient   *http.Client
}

// NewClient создает клиента. Завершающий "/" в BaseURL отбрасывается.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		publicToken:  opts.PublicToken,
		privateToken: opts.PrivateToken,
		httpClient:   httpClient,
	}
}

// BaseURL возвращает нормализованный адрес Betty.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetImage запрашивает метаданные изображения: GET {base}/api/{id}.
func (c *Client) GetImage(ctx context.Context, id int64) (*Image, error) {
	endpoint := c.baseURL + "/api/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("betty get image %d: build request: %w", id, err)
	}
	req.Header.Set(APIKeyHeader, c.publicToken)

	img, err := c.do(req, "get")
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d", ErrImageNotFound, id)
		}
		return nil, err
	}
	return img, nil
}

// Upload загружает файл: multipart POST {base}/api/new, поле "image".
func (c *Client) Upload(ctx context.Context, name string, file io.Reader) (*Image, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", name)
	if err != nil {
		return nil, fmt.Errorf("betty upload: create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("betty upload: copy file: %w", err)
	}
	if err := writer.WriteField("name", name); err != nil {
		return nil, fmt.Errorf("betty upload: write name: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("betty upload: close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/new", body)
	if err != nil {
		return nil, fmt.Errorf("betty upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(APIKeyHeader, c.privateToken)

	img, err := c.do(req, "upload")
	if err != nil {
		return nil, err
	}
	log.Infof("Betty: загружено изображение %q, ID %d", name, img.ID)
	return img, nil
}

// UpdateImage меняет name/credit изображения: PATCH {base}/api/{id}.
func (c *Client) UpdateImage(ctx context.Context, id int64, update ImageUpdate) (*Image, error) {
	payload, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("betty update image %d: encode: %w", id, err)
	}
	endpoint := c.baseURL + "/api/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("betty update image %d: build request: %w", id, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(APIKeyHeader, c.privateToken)

	img, err := c.do(req, "update")
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d", ErrImageNotFound, id)
		}
		return nil, err
	}
	return img, nil
}

func (c *Client) do(req *http.Request, operation string) (*Image, error) {
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveBetty(operation, "error", started)
		return nil, fmt.Errorf("betty %s: %w", operation, err)
	}
	defer resp.Body.Close()
	metrics.ObserveBetty(operation, strconv.Itoa(resp.StatusCode), started)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.WithFields(log.Fields{
			"operation": operation,
			"status":    resp.StatusCode,
			"url":       req.URL.String(),
		}).Warn("Betty вернул ошибку")
		return nil, &APIError{Operation: operation, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var img Image
	if err := json.NewDecoder(resp.Body).Decode(&img); err != nil {
		return nil, fmt.Errorf("betty %s: decode response: %w", operation, err)
	}
	return &img, nil
}
