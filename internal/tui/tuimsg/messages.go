// Package tuimsg holds the messages scenes send to the root model
package tuimsg

// RecordSelectedMsg signals the sidebar cursor landed on a record
type RecordSelectedMsg struct {
	ID string
}

// RecordActionMsg asks the root model to change the roster
type RecordActionMsg struct {
	Action RecordAction
	ID     string
}

// RecordAction is a roster mutation requested from a scene
type RecordAction int

const (
	ActionAdd RecordAction = iota
	ActionRemove
	ActionClear
)
