package domain

const (
	PulseErrMessage       = "Please verify pulse and try again. The valid range is between 30 and 250 BPM."
	TemperatureErrMessage = "Please verify temperature and try again. The valid range is between 95° and 107.6°."
	ErrorEntryTitle       = "We found some errors."
)

type ValidationError struct {
	Field   FieldName
	Message string
}

// ErrorEntry summarizes the validation failures blocking the submission of one patient.
type ErrorEntry struct {
	Title      string
	Messages   []string
	FieldNames []FieldName
}

func IsPulseValid(value float64) bool {
	return value >= MinPulse && value <= MaxPulse
}

func IsTemperatureValid(value float64) bool {
	return value >= MinTemperature && value <= MaxTemperature
}

// ValidateVitals reports the out of range fields of a change, pulse first.
// Fields absent from the change are never reported.
func ValidateVitals(change VitalsChange) []ValidationError {
	errs := make([]ValidationError, 0, 2)

	if change.Pulse != nil && !IsPulseValid(*change.Pulse) {
		errs = append(errs, ValidationError{Field: FieldPulse, Message: PulseErrMessage})
	}

	if change.Temperature != nil && !IsTemperatureValid(*change.Temperature) {
		errs = append(errs, ValidationError{Field: FieldTemperature, Message: TemperatureErrMessage})
	}

	return errs
}

// NewErrorEntry builds the entry for a non-empty error list. It reports false for an empty list.
func NewErrorEntry(errs []ValidationError) (ErrorEntry, bool) {
	if len(errs) == 0 {
		return ErrorEntry{}, false
	}

	entry := ErrorEntry{
		Title:      ErrorEntryTitle,
		Messages:   make([]string, 0, len(errs)),
		FieldNames: make([]FieldName, 0, len(errs)),
	}
	for _, e := range errs {
		entry.Messages = append(entry.Messages, e.Message)
		entry.FieldNames = append(entry.FieldNames, e.Field)
	}

	return entry, true
}
