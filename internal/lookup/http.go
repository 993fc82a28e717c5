package lookup

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

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/medic/supportbot/internal/models"
)

const DefaultTimeout = 15 * time.Second

type requestBody struct {
	NumeroDni string `json:"numeroDni"`
}

type responseBody struct {
	DNI            flexString `json:"dni"`
	Nombre         flexString `json:"nombre"`
	Plan           flexString `json:"plan"`
	NumeroContrato flexString `json:"numero_contrato"`
	Habilitado     flexBool   `json:"habilitado"`
}

// HTTPClient POSTs {"numeroDni": id} to Endpoint. Non-2xx answers and
// unparsable bodies are errors; an empty or null body is ErrNotFound.
type HTTPClient struct {
	Endpoint string
	Client   *http.Client
	Logger   zerolog.Logger

	breaker *gobreaker.CircuitBreaker
}

func NewHTTPClient(endpoint string, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &HTTPClient{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
		Logger:   logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "member-lookup",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
	return c
}

func (h *HTTPClient) LookupByNationalID(ctx context.Context, nationalID string) (models.Profile, error) {
	if h.breaker == nil {
		return h.fetch(ctx, nationalID)
	}
	// not-found is a healthy answer and must not trip the breaker
	var notFound bool
	res, err := h.breaker.Execute(func() (interface{}, error) {
		p, err := h.fetch(ctx, nationalID)
		if errors.Is(err, ErrNotFound) {
			notFound = true
			return models.Profile{}, nil
		}
		return p, err
	})
	if err != nil {
		return models.Profile{}, err
	}
	if notFound {
		return models.Profile{}, ErrNotFound
	}
	return res.(models.Profile), nil
}

func (h *HTTPClient) fetch(ctx context.Context, nationalID string) (models.Profile, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	b, _ := json.Marshal(requestBody{NumeroDni: nationalID})
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(b))
	if err != nil {
		return models.Profile{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return models.Profile{}, fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.Profile{}, fmt.Errorf("read lookup body: %w", err)
	}
	h.Logger.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("member lookup")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Profile{}, fmt.Errorf("lookup http error: %s", resp.Status)
	}
	return parseResponse(body)
}

func parseResponse(body []byte) (models.Profile, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return models.Profile{}, ErrNotFound
	}
	var r *responseBody
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return models.Profile{}, fmt.Errorf("decode lookup body: %w", err)
	}
	if r == nil {
		return models.Profile{}, ErrNotFound
	}
	p := models.Profile{
		NationalID:     string(r.DNI),
		FullName:       string(r.Nombre),
		PlanName:       string(r.Plan),
		ContractNumber: string(r.NumeroContrato),
	}
	if r.Habilitado.set {
		p.IsActive = models.Bool(r.Habilitado.value)
	}
	return p, nil
}

// flexString accepts JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// flexBool treats true, "true", 1 and "1" as true and any other present
// value as false.
type flexBool struct {
	set   bool
	value bool
}

func (f *flexBool) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	f.set = true
	if unq, err := strconv.Unquote(raw); err == nil {
		raw = unq
	}
	f.value = raw == "true" || raw == "1"
	return nil
}
