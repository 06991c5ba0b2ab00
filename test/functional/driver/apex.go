package driver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

type ApexPatient struct {
	ID          string   `json:"Id"`
	FirstName   string   `json:"FirstName__c"`
	LastName    string   `json:"LastName__c"`
	Age         float64  `json:"Age__c"`
	Town        string   `json:"Town__c"`
	Temperature *float64 `json:"Temperature__c,omitempty"`
	Pulse       *float64 `json:"Pulse__c,omitempty"`
}

type ApexMedication struct {
	ID        string  `json:"Id"`
	StartDate *string `json:"StartDate__c"`
	EndDate   *string `json:"EndDate__c"`
	Reference struct {
		Name string `json:"Name"`
		Dose string `json:"Dose__c"`
	} `json:"Medication__r"`
}

// FakeApex serves the patient Apex REST resources from memory and records every PATCH body.
type FakeApex struct {
	server *httptest.Server

	mu          sync.Mutex
	patients    []ApexPatient
	medications map[string][]ApexMedication
	updates     []string
	rejectWith  string
}

func NewFakeApex() *FakeApex {
	apex := &FakeApex{
		medications: make(map[string][]ApexMedication),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /services/apexrest/patients", apex.listPatients)
	mux.HandleFunc("PATCH /services/apexrest/patients/{id}", apex.updatePatient)
	mux.HandleFunc("GET /services/apexrest/patients/{id}/medications", apex.listMedications)
	apex.server = httptest.NewServer(mux)

	return apex
}

func (a *FakeApex) URL() string {
	return a.server.URL
}

func (a *FakeApex) Close() {
	a.server.Close()
}

func (a *FakeApex) AddPatient(patient ApexPatient) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.patients = append(a.patients, patient)
}

func (a *FakeApex) AddMedication(patientID string, medication ApexMedication) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.medications[patientID] = append(a.medications[patientID], medication)
}

// RejectUpdates makes every following PATCH fail with message, until called with "".
func (a *FakeApex) RejectUpdates(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rejectWith = message
}

func (a *FakeApex) Updates() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.updates...)
}

func (a *FakeApex) listPatients(w http.ResponseWriter, _ *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	writeJSON(w, http.StatusOK, a.patients)
}

func (a *FakeApex) listMedications(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	medications := a.medications[r.PathValue("id")]
	if medications == nil {
		medications = []ApexMedication{}
	}
	writeJSON(w, http.StatusOK, medications)
}

func (a *FakeApex) updatePatient(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, []map[string]string{{"message": err.Error()}})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.updates = append(a.updates, string(body))
	if a.rejectWith != "" {
		writeJSON(w, http.StatusBadRequest, []map[string]string{{"message": a.rejectWith, "errorCode": "ENTITY_IS_LOCKED"}})
		return
	}

	var change struct {
		Temperature *float64 `json:"Temperature__c"`
		Pulse       *float64 `json:"Pulse__c"`
	}
	if err := json.Unmarshal(body, &change); err != nil {
		writeJSON(w, http.StatusBadRequest, []map[string]string{{"message": err.Error()}})
		return
	}

	for i := range a.patients {
		if a.patients[i].ID != r.PathValue("id") {
			continue
		}
		if change.Temperature != nil {
			a.patients[i].Temperature = change.Temperature
		}
		if change.Pulse != nil {
			a.patients[i].Pulse = change.Pulse
		}
		writeJSON(w, http.StatusOK, a.patients[i])
		return
	}

	writeJSON(w, http.StatusNotFound, []map[string]string{{"message": "entity is deleted", "errorCode": "ENTITY_IS_DELETED"}})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
