package domain

import (
	"encoding/json"
	"time"
)

// AuditLog represents an audit trail entry for opening balance changes
type AuditLog struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`       // Who performed the action
	Action       AuditAction `json:"action"`        // What action (opening_balance.create, ...)
	ResourceType string      `json:"resource_type"` // Type of resource (opening_balance)
	ResourceID   string      `json:"resource_id"`   // ID of the resource
	Reason       string      `json:"reason,omitempty"`
	JournalID    string      `json:"journal_id,omitempty"`
	BeforeState  JSON        `json:"before_state,omitempty"` // State before the action
	AfterState   JSON        `json:"after_state,omitempty"`  // State after the action
	Status       AuditStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	AuditActionOpeningBalanceCreate  AuditAction = "opening_balance.create"
	AuditActionOpeningBalanceCorrect AuditAction = "opening_balance.correct"
	AuditActionOpeningBalanceLock    AuditAction = "opening_balance.lock"
	AuditActionOpeningBalanceUnlock  AuditAction = "opening_balance.unlock"
	AuditActionAccountsSeed          AuditAction = "accounts.seed"
)

// AuditResourceOpeningBalance is the resource type of opening balance audit logs.
const AuditResourceOpeningBalance = "opening_balance"

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	UserID     string
	Action     AuditAction
	ResourceID string
	Limit      int
	Offset     int
}

// Matches reports whether log passes the filter.
func (f AuditFilter) Matches(log *AuditLog) bool {
	if f.UserID != "" && log.UserID != f.UserID {
		return false
	}
	if f.Action != "" && log.Action != f.Action {
		return false
	}
	if f.ResourceID != "" && log.ResourceID != f.ResourceID {
		return false
	}
	return true
}
