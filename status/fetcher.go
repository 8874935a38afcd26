package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	dasherrors "github.com/iwtcode/vehicleDash/pkg/errors"
)

// Payload - разобранный JSON документ статуса без проверки схемы.
// Числа представлены как float64, объекты как map[string]any.
type Payload = any

// Fetcher выполняет один GET запрос к эндпоинту статуса на каждый вызов Fetch.
type Fetcher struct {
	endpoint string
	client   *http.Client
}

// NewFetcher создает адаптер для указанного эндпоинта.
// Если client равен nil, используется http.Client без таймаута.
func NewFetcher(endpoint string, client *http.Client) (*Fetcher, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q: host required", endpoint)
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{endpoint: endpoint, client: client}, nil
}

// Endpoint возвращает адрес опроса.
func (f *Fetcher) Endpoint() string {
	return f.endpoint
}

// Fetch запрашивает текущий статус в обход любых кешей.
// Любая ошибка возвращается как *errors.TransportError.
func (f *Fetcher) Fetch(ctx context.Context) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, dasherrors.NewTransportError(f.endpoint, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, dasherrors.NewTransportError(f.endpoint, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, dasherrors.NewStatusError(f.endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dasherrors.NewTransportError(f.endpoint, resp.StatusCode, err)
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, dasherrors.NewTransportError(f.endpoint, resp.StatusCode,
			fmt.Errorf("%w: %v", dasherrors.ErrMalformedBody, err))
	}

	return payload, nil
}
