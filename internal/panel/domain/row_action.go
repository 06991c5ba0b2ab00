package domain

type RowActionName string

const (
	RowActionView   RowActionName = "view"
	RowActionSubmit RowActionName = "submit"
)

// RowAction is one of ViewDetailAction or SubmitAction.
type RowAction interface {
	Name() RowActionName
	Target() ID
	isRowAction()
}

type ViewDetailAction struct {
	PatientID ID
}

func (a ViewDetailAction) Name() RowActionName { return RowActionView }
func (a ViewDetailAction) Target() ID          { return a.PatientID }
func (ViewDetailAction) isRowAction()          {}

type SubmitAction struct {
	PatientID ID
}

func (a SubmitAction) Name() RowActionName { return RowActionSubmit }
func (a SubmitAction) Target() ID          { return a.PatientID }
func (SubmitAction) isRowAction()          {}
