package models

// Credit/debit sign markers appended to amounts on report lines.
const (
	CreditSuffix = "CR"
	DebitSuffix  = "DB"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
