package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (d *APIDriver) WebSocketURL(path string) string {
	return "ws" + strings.TrimPrefix(d.baseURL, "http") + path
}

func (d *APIDriver) LoadPatients() (*http.Response, error) {
	return d.client.Post(fmt.Sprintf("%s/v1/panel/load", d.baseURL), "application/json", nil)
}

func (d *APIDriver) ListPatients() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/panel/patients", d.baseURL))
}

func (d *APIDriver) ApplyDrafts(drafts []map[string]any) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{"draft_values": drafts})
	if err != nil {
		panic(err)
	}
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/v1/panel/drafts", d.baseURL), bytes.NewBuffer(reqBody))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return d.client.Do(req)
}

func (d *APIDriver) RowAction(patientID, action string) (*http.Response, error) {
	reqBody, err := json.Marshal(map[string]any{"action": action})
	if err != nil {
		panic(err)
	}
	return d.client.Post(fmt.Sprintf("%s/v1/panel/patients/%s/actions", d.baseURL, patientID), "application/json", bytes.NewBuffer(reqBody))
}

func (d *APIDriver) FetchMedications(patientID string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/panel/patients/%s/medications", d.baseURL, patientID))
}

func (d *APIDriver) GetStatus() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/panel/status", d.baseURL))
}

func (d *APIDriver) GetHealthz() (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/healthz", d.baseURL))
}
