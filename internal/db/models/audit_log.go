package models

// Severity classifies an audit entry.
type Severity string

const (
	// SeverityInfo is used for creations and activations.
	SeverityInfo Severity = "Info"
	// SeverityWarning is used for updates, deletions and deactivations.
	SeverityWarning Severity = "Warning"
	// SeverityCritical is used for permission and bulk deletions.
	SeverityCritical Severity = "Critical"
)

// Severities lists every severity in display order.
var Severities = []Severity{SeverityInfo, SeverityWarning, SeverityCritical} //nolint:gochecknoglobals

// AuditLogEntry records one mutating action.
// Timestamp is preformatted ("1/2/2006, 15:04:05") and User is the configured actor.
type AuditLogEntry struct {
	ID        uint64   `json:"id"`
	Timestamp string   `json:"timestamp"`
	User      string   `json:"user"`
	Action    string   `json:"action"`
	Resource  string   `json:"resource"`
	Details   string   `json:"details"`
	Severity  Severity `json:"severity"`
}

// AuditLogEntryID returns the entry's id.
func AuditLogEntryID(e AuditLogEntry) uint64 { return e.ID }
