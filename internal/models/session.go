// Package models defines session state structures for HudumaFinder conversations.
package models

import "time"

// Stage identifies where a session is in the fixed dialogue flow.
type Stage string

const (
	StageWelcome        Stage = "WELCOME"
	StageAskLocation    Stage = "ASK_LOCATION"
	StageAskService     Stage = "ASK_SERVICE"
	StageAskBudget      Stage = "ASK_BUDGET"
	StageShowResults    Stage = "SHOW_RESULTS"
	StageCompareOptions Stage = "COMPARE_OPTIONS"
	StageGetMoreDetails Stage = "GET_MORE_DETAILS"
	StageConfirmChoice  Stage = "CONFIRM_CHOICE"
)

// IsValidStage checks if the given stage is part of the dialogue flow.
func IsValidStage(s Stage) bool {
	switch s {
	case StageWelcome, StageAskLocation, StageAskService, StageAskBudget,
		StageShowResults, StageCompareOptions, StageGetMoreDetails, StageConfirmChoice:
		return true
	default:
		return false
	}
}

// SessionState is the per-user mutable conversation record. It is owned
// exclusively by the session store; the conversation engine receives it for
// the duration of one message-handling call and must not retain it.
//
// Invariant: LastResults is always the exact ordered set most recently shown
// to the user. SelectedIndex is 1-based as exposed to the user, valid only
// while LastResults is non-empty, and resets to 0 whenever LastResults is
// replaced.
type SessionState struct {
	SessionID     string            `json:"session_id"`
	Stage         Stage             `json:"stage"`
	UserLocation  *Location         `json:"user_location,omitempty"`
	ServiceType   ServiceType       `json:"service_type,omitempty"`
	Budget        *BudgetRange      `json:"budget,omitempty"` // nil = no preference
	LastResults   []ServiceProvider `json:"last_results,omitempty"`
	SelectedIndex int               `json:"selected_index,omitempty"` // 1-based; 0 = none
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewSessionState creates a fresh session in the WELCOME stage.
func NewSessionState(sessionID string) *SessionState {
	now := time.Now()
	return &SessionState{
		SessionID: sessionID,
		Stage:     StageWelcome,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetResults replaces the result set most recently shown to the user and
// clears any stale selection.
func (s *SessionState) SetResults(results []ServiceProvider) {
	s.LastResults = results
	s.SelectedIndex = 0
}

// SelectedProvider returns the provider addressed by SelectedIndex, or nil
// when no valid selection is active.
func (s *SessionState) SelectedProvider() *ServiceProvider {
	if s.SelectedIndex < 1 || s.SelectedIndex > len(s.LastResults) {
		return nil
	}
	return &s.LastResults[s.SelectedIndex-1]
}

// Reset clears all conversation state back to WELCOME, as triggered by the
// global restart keywords.
func (s *SessionState) Reset() {
	s.Stage = StageWelcome
	s.UserLocation = nil
	s.ServiceType = ""
	s.Budget = nil
	s.LastResults = nil
	s.SelectedIndex = 0
}
