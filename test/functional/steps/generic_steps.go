package steps

import (
	"encoding/json"
)

func (fc *FeatureContext) theResponseStatusCodeShouldBe(code int) error {
	fc.require.Equal(code, fc.response.StatusCode, "Unexpected status code")
	return nil
}

func (fc *FeatureContext) theResponseMessageShouldBe(message string) error {
	fc.require.Equal(message, fc.responseData["message"])
	return nil
}

func (fc *FeatureContext) theRemoteStoreRejectsUpdatesWith(message string) error {
	fc.apex.RejectUpdates(message)
	return nil
}

func (fc *FeatureContext) theRemoteStoreAcceptsUpdatesAgain() error {
	fc.apex.RejectUpdates("")
	return nil
}

func (fc *FeatureContext) theRemoteStoreShouldHaveReceivedUpdates(count int) error {
	fc.require.Len(fc.apex.Updates(), count)
	return nil
}

func (fc *FeatureContext) theLastUpdateSentToTheRemoteStoreShouldBe(body string) error {
	updates := fc.apex.Updates()
	fc.require.NotEmpty(updates)
	fc.require.JSONEq(body, updates[len(updates)-1])
	return nil
}

// Healthz endpoint step implementations

func (fc *FeatureContext) iCallTheHealthzEndpoint() error {
	response, err := fc.apiDriver.GetHealthz()
	if err != nil {
		return err
	}
	fc.response = response
	fc.responseData = nil
	return fc.decodeBody(response.Body, &fc.responseData)
}

func (fc *FeatureContext) theResponseShouldContainStatusInformation() error {
	fc.require.Equal("success", fc.responseData["status"], "Status should be 'success'")
	fc.require.NotEmpty(fc.responseData["version"], "version should be present")
	fc.require.NotEmpty(fc.responseData["node_id"], "node_id should be present")

	raw, err := json.Marshal(fc.responseData)
	fc.require.NoError(err)
	fc.require.NotContains(string(raw), "functional-token")
	return nil
}
