package core

// ComplianceStatus tells whether a regulation always binds a project.
type ComplianceStatus string

// Compliance statuses.
const (
	ComplianceMandatory   ComplianceStatus = "mandatory"
	ComplianceConditional ComplianceStatus = "conditional"
)

// IsValid reports whether s is a known status.
func (s ComplianceStatus) IsValid() bool {
	return s == ComplianceMandatory || s == ComplianceConditional
}

// Regulation identifiers for the seeded catalog.
const (
	RegulationPBL                = "pbl"
	RegulationNaturmangfoldloven = "naturmangfoldloven"
	RegulationForurensningsloven = "forurensningsloven"
	RegulationTEK17              = "tek17"
	RegulationKommuneplan        = "kommuneplan_arealdel"
)

// RegulationRecord is a read-only catalog entry.
// Applicability to a project is computed, never stored.
type RegulationRecord struct {
	ID                string           `json:"id" yaml:"id"`
	Name              string           `json:"name" yaml:"name"`
	Type              string           `json:"type" yaml:"type"`
	Description       string           `json:"description" yaml:"description"`
	ComplianceStatus  ComplianceStatus `json:"compliance_status" yaml:"compliance_status"`
	RequiredDocuments string           `json:"required_documents" yaml:"required_documents"`
	DeadlineDays      int              `json:"deadline_days" yaml:"deadline_days"`
	PriorityLevel     int              `json:"priority_level" yaml:"priority_level"` // 1 = highest
}
