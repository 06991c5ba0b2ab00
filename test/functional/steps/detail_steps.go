package steps

import (
	"patient-panel/test/functional/driver"
)

func (fc *FeatureContext) patientTakesSince(patientID, name, dose, startDate string) error {
	medication := driver.ApexMedication{
		ID:        patientID + "-" + name,
		StartDate: &startDate,
	}
	medication.Reference.Name = name
	medication.Reference.Dose = dose

	fc.apex.AddMedication(patientID, medication)
	return nil
}

func (fc *FeatureContext) iViewTheDetailsOfPatient(patientID string) error {
	response, err := fc.apiDriver.RowAction(patientID, "view")
	if err != nil {
		return err
	}
	fc.response = response
	fc.responseData = nil
	return fc.decodeBody(response.Body, &fc.responseData)
}

func (fc *FeatureContext) detail() map[string]any {
	detail, ok := fc.responseData["detail"].(map[string]any)
	fc.require.True(ok, "Response should contain a detail view")
	return detail
}

func (fc *FeatureContext) theDetailViewShouldBeLabelled(label string) error {
	detail := fc.detail()
	fc.require.Equal(label, detail["label"])
	fc.require.Equal("small", detail["size"])
	return nil
}

func (fc *FeatureContext) theDetailViewShouldListMedications(count int) error {
	medications, ok := fc.detail()["medications"].([]any)
	fc.require.True(ok, "Medications should be a list")
	fc.require.Len(medications, count)
	return nil
}

func (fc *FeatureContext) theDetailViewShouldListStarting(name, dose, startDate string) error {
	medications, ok := fc.detail()["medications"].([]any)
	fc.require.True(ok, "Medications should be a list")

	for _, item := range medications {
		medication := item.(map[string]any)
		if medication["medication"] == name {
			fc.require.Equal(dose, medication["dose"])
			fc.require.Equal(startDate, medication["startDate"])
			fc.require.Nil(medication["endDate"])
			return nil
		}
	}

	fc.require.Failf("medication not listed", "%s is not in %v", name, medications)
	return nil
}

func (fc *FeatureContext) theDetailViewShouldHaveNoError() error {
	fc.require.NotContains(fc.detail(), "error")
	return nil
}
