package communication

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"patient-panel/internal/panel/communication/internal"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/usecases"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	_apexRestPath      = "/services/apexrest"
	_oauthTokenPath    = "/services/oauth2/token"
	_defaultTimeout    = 30 * time.Second
	_defaultMaxRetries = 3
	_defaultRetryDelay = 500 * time.Millisecond
)

var (
	ErrMissingBaseURL     = errors.New("apex base url is required")
	ErrMissingCredentials = errors.New("apex access token or client credentials are required")
	ErrUnexpectedStatus   = errors.New("unexpected status from apex rest")
)

type ApexConfig struct {
	BaseURL      string
	AccessToken  string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	MaxRetries   uint64
	RetryDelay   time.Duration
}

func NewApexRemoteStore(ctx context.Context, config ApexConfig) (*ApexRemoteStore, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parsing apex base url: %w", err)
	}

	tokenSource, err := newTokenSource(ctx, baseURL, config)
	if err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = _defaultTimeout
	}
	maxRetries := config.MaxRetries
	if maxRetries == 0 {
		maxRetries = _defaultMaxRetries
	}
	retryDelay := config.RetryDelay
	if retryDelay <= 0 {
		retryDelay = _defaultRetryDelay
	}

	return &ApexRemoteStore{
		baseURL: baseURL + _apexRestPath,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.ReuseTokenSource(nil, tokenSource),
				Base:   otelhttp.NewTransport(http.DefaultTransport),
			},
		},
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}, nil
}

func newTokenSource(ctx context.Context, baseURL string, config ApexConfig) (oauth2.TokenSource, error) {
	if config.AccessToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: config.AccessToken,
			TokenType:   "Bearer",
		}), nil
	}

	if config.ClientID != "" && config.ClientSecret != "" {
		credentials := clientcredentials.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     baseURL + _oauthTokenPath,
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		})
		return credentials.TokenSource(ctx), nil
	}

	return nil, ErrMissingCredentials
}

var _ usecases.RemoteStore = (*ApexRemoteStore)(nil)

// ApexRemoteStore talks to the patient Apex REST resources of a Salesforce org.
// Reads are retried with exponential backoff, writes are sent once.
type ApexRemoteStore struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
	retryDelay time.Duration
}

func (s *ApexRemoteStore) LoadPatients(ctx context.Context) ([]domain.Patient, error) {
	var payload []internal.Patient
	if err := s.read(ctx, "/patients", &payload); err != nil {
		return nil, err
	}

	patients := make([]domain.Patient, 0, len(payload))
	for _, p := range payload {
		if p.ID == "" {
			slog.Warn("skipping patient without id")
			continue
		}
		patients = append(patients, p.ToDomain())
	}
	return patients, nil
}

func (s *ApexRemoteStore) UpdatePatient(ctx context.Context, id domain.ID, change domain.VitalsChange) (domain.PatientFields, error) {
	var payload internal.Patient
	found, err := s.do(ctx, http.MethodPatch, "/patients/"+url.PathEscape(id.String()), internal.FromVitalsChange(change), &payload)
	if err != nil {
		return domain.PatientFields{}, err
	}

	if !found {
		return change.Fields(), nil
	}
	return payload.ToFields(), nil
}

func (s *ApexRemoteStore) LoadPatientMedications(ctx context.Context, id domain.ID) ([]domain.PatientMedication, error) {
	var payload []internal.PatientMedication
	if err := s.read(ctx, "/patients/"+url.PathEscape(id.String())+"/medications", &payload); err != nil {
		return nil, err
	}

	result := make([]domain.PatientMedication, len(payload))
	for i, pm := range payload {
		result[i] = pm.ToDomain()
	}
	return result, nil
}

func (s *ApexRemoteStore) read(ctx context.Context, path string, out any) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryDelay

	operation := func() error {
		_, err := s.do(ctx, http.MethodGet, path, nil, out)
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		slog.Warn("retrying apex read",
			slog.String("path", path),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()))
	}

	return backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(policy, s.maxRetries), ctx), notify)
}

// do sends one request and decodes a non-empty response body into out.
// It reports whether a body was decoded.
func (s *ApexRemoteStore) do(ctx context.Context, method, path string, body, out any) (bool, error) {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, &usecases.RemoteError{Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, &usecases.RemoteError{Op: op, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, &usecases.RemoteError{
			Op:      op,
			Message: errorMessage(resp.StatusCode, data),
			Err:     &statusError{code: resp.StatusCode},
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, &usecases.RemoteError{Op: op, Message: "malformed response from remote store", Err: err}
	}
	return true, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d", e.code)
}

func (e *statusError) Unwrap() error {
	return ErrUnexpectedStatus
}

func isRetryable(err error) bool {
	var status *statusError
	if errors.As(err, &status) {
		return status.code == http.StatusTooManyRequests || status.code >= http.StatusInternalServerError
	}

	var transportErr *url.Error
	return errors.As(err, &transportErr) && !errors.Is(err, context.Canceled)
}

// errorMessage extracts the user facing message of an Apex error body, which is either an
// object or a list of objects with a message field. It falls back to the status text.
func errorMessage(code int, body []byte) string {
	var list []internal.ErrorBody
	if err := json.Unmarshal(body, &list); err == nil {
		for _, e := range list {
			if e.Message != "" {
				return e.Message
			}
		}
	}

	var single internal.ErrorBody
	if err := json.Unmarshal(body, &single); err == nil && single.Message != "" {
		return single.Message
	}

	if text := http.StatusText(code); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", code)
}
