package steps

import (
	"fmt"
	"patient-panel/test/functional/driver"
	"strconv"

	"github.com/cucumber/godog"
)

func (fc *FeatureContext) theRemoteStoreHoldsThePatients(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("patients table needs a header and at least one row")
	}

	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}

		age, err := strconv.ParseFloat(values["Age"], 64)
		if err != nil {
			return fmt.Errorf("parsing age: %w", err)
		}
		patient := driver.ApexPatient{
			ID:        values["Id"],
			FirstName: values["FirstName"],
			LastName:  values["LastName"],
			Age:       age,
			Town:      values["Town"],
		}
		if patient.Temperature, err = optionalFloat(values["Temperature"]); err != nil {
			return err
		}
		if patient.Pulse, err = optionalFloat(values["Pulse"]); err != nil {
			return err
		}
		fc.apex.AddPatient(patient)
	}

	return nil
}

func (fc *FeatureContext) thePanelHasLoadedThePatients() error {
	if err := fc.iLoadThePatients(); err != nil {
		return err
	}
	fc.require.Equal(200, fc.response.StatusCode, "Unexpected status code")
	return nil
}

func (fc *FeatureContext) iLoadThePatients() error {
	response, err := fc.apiDriver.LoadPatients()
	if err != nil {
		return err
	}
	fc.response = response

	if response.StatusCode != 200 {
		return fc.decodeBody(response.Body, &fc.responseData)
	}
	fc.rows, err = fc.decodeRows(response)
	return err
}

func (fc *FeatureContext) thePanelShouldListPatients(count int) error {
	rows, err := fc.listRows()
	fc.require.NoError(err)
	fc.require.Len(rows, count)
	return nil
}

func (fc *FeatureContext) iEditPatientSettingTo(patientID, field, value string) error {
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", field, err)
	}

	draft := map[string]any{"Id": patientID}
	switch field {
	case "pulse":
		draft["Pulse__c"] = number
	case "temperature":
		draft["Temperature__c"] = number
	}
	return fc.applyDrafts(draft)
}

func (fc *FeatureContext) iEditPatientSettingPulseAndTemperature(patientID, pulse, temperature string) error {
	p, err := strconv.ParseFloat(pulse, 64)
	if err != nil {
		return fmt.Errorf("parsing pulse: %w", err)
	}
	t, err := strconv.ParseFloat(temperature, 64)
	if err != nil {
		return fmt.Errorf("parsing temperature: %w", err)
	}
	return fc.applyDrafts(map[string]any{"Id": patientID, "Pulse__c": p, "Temperature__c": t})
}

func (fc *FeatureContext) applyDrafts(drafts ...map[string]any) error {
	response, err := fc.apiDriver.ApplyDrafts(drafts)
	if err != nil {
		return err
	}
	fc.response = response
	fc.require.Equal(200, response.StatusCode, "Unexpected status code")

	fc.rows, err = fc.decodeRows(response)
	return err
}

func (fc *FeatureContext) iSubmitPatient(patientID string) error {
	response, err := fc.apiDriver.RowAction(patientID, "submit")
	if err != nil {
		return err
	}
	fc.response = response
	fc.responseData = nil
	return fc.decodeBody(response.Body, &fc.responseData)
}

func (fc *FeatureContext) theSubmissionStateShouldBe(state string) error {
	submission, ok := fc.responseData["submission"].(map[string]any)
	fc.require.True(ok, "Response should contain a submission")
	fc.require.Equal(state, submission["state"])
	return nil
}

func (fc *FeatureContext) patientShouldHaveSubmission(patientID, state string) error {
	row, err := fc.row(patientID)
	fc.require.NoError(err)
	fc.require.Equal(state == "disabled", row["is_submit_disabled"], "Unexpected submit flag")
	return nil
}

func (fc *FeatureContext) patientShouldHaveVital(patientID, field, value string) error {
	expected, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", field, err)
	}

	row, err := fc.row(patientID)
	fc.require.NoError(err)

	key := "Pulse__c"
	if field == "temperature" {
		key = "Temperature__c"
	}
	fc.require.Equal(expected, row[key])
	return nil
}

func (fc *FeatureContext) patientShouldShowTheError(patientID, message string) error {
	row, err := fc.row(patientID)
	fc.require.NoError(err)

	entry, ok := row["errors"].(map[string]any)
	fc.require.True(ok, "Row should carry an error entry")
	fc.require.Equal("We found some errors.", entry["title"])
	fc.require.Contains(entry["messages"], message)
	return nil
}

func (fc *FeatureContext) patientShouldShowNoErrors(patientID string) error {
	row, err := fc.row(patientID)
	fc.require.NoError(err)
	fc.require.NotContains(row, "errors")
	return nil
}

func (fc *FeatureContext) iRememberTheErrorsOfPatient(patientID string) error {
	row, err := fc.row(patientID)
	fc.require.NoError(err)
	fc.savedErrors = row["errors"]
	return nil
}

func (fc *FeatureContext) theErrorsOfPatientShouldBeUnchanged(patientID string) error {
	row, err := fc.row(patientID)
	fc.require.NoError(err)
	fc.require.NotNil(fc.savedErrors)
	fc.require.Equal(fc.savedErrors, row["errors"])
	return nil
}

func (fc *FeatureContext) thePanelStatusShouldReportTheError(message string) error {
	response, err := fc.apiDriver.GetStatus()
	if err != nil {
		return err
	}

	var status map[string]any
	fc.require.NoError(fc.decodeBody(response.Body, &status))
	fc.require.Equal(message, status["last_error"])
	fc.require.Equal(false, status["submitting"])
	return nil
}

func (fc *FeatureContext) listRows() ([]map[string]any, error) {
	response, err := fc.apiDriver.ListPatients()
	if err != nil {
		return nil, err
	}
	return fc.decodeRows(response)
}

func (fc *FeatureContext) row(patientID string) (map[string]any, error) {
	rows, err := fc.listRows()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row["Id"] == patientID {
			return row, nil
		}
	}
	return nil, fmt.Errorf("patient %s is not listed", patientID)
}

func optionalFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", value, err)
	}
	return &number, nil
}
