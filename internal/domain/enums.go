package domain

import (
	apperrors "github.com/crediteval/credit-engine/pkg/errors"
)

// ReportStatus is the review lifecycle state of a credit report.
type ReportStatus string

const (
	StatusInProgress      ReportStatus = "in_progress"
	StatusPending         ReportStatus = "pending"
	StatusApproved        ReportStatus = "approved"
	StatusRejected        ReportStatus = "rejected"
	StatusNeedsCorrection ReportStatus = "needs_correction"
)

// AllStatuses lists every lifecycle state, used by statistics folds.
var AllStatuses = []ReportStatus{
	StatusInProgress,
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusNeedsCorrection,
}

// ParseReportStatus maps a stored status token to its typed value.
func ParseReportStatus(s string) (ReportStatus, error) {
	switch ReportStatus(s) {
	case StatusInProgress, StatusPending, StatusApproved, StatusRejected, StatusNeedsCorrection:
		return ReportStatus(s), nil
	}
	return "", apperrors.WrapUnknownStatus(s)
}

func (s ReportStatus) String() string {
	return string(s)
}

// Attractiveness is the coarse business-facing rating derived from the
// total score. AttractivenessNone is reserved for blacklisted applicants.
type Attractiveness string

const (
	AttractivenessNone    Attractiveness = "none"
	AttractivenessVeryLow Attractiveness = "very_low"
	AttractivenessLow     Attractiveness = "low"
	AttractivenessMedium  Attractiveness = "medium"
	AttractivenessHigh    Attractiveness = "high"
)

// ParseAttractiveness maps a stored attractiveness token to its typed value.
func ParseAttractiveness(s string) (Attractiveness, error) {
	switch Attractiveness(s) {
	case AttractivenessNone, AttractivenessVeryLow, AttractivenessLow, AttractivenessMedium, AttractivenessHigh:
		return Attractiveness(s), nil
	}
	return "", apperrors.WrapUnknownStatus(s)
}

func (a Attractiveness) String() string {
	return string(a)
}

// RiskLevel grades the default risk of a loan offer.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ParseRiskLevel maps a stored risk token to its typed value.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return RiskLevel(s), nil
	}
	return "", apperrors.WrapUnknownStatus(s)
}

func (r RiskLevel) String() string {
	return string(r)
}

// UserRole separates lending-department officers from supervising managers.
type UserRole string

const (
	RoleCreditOfficer UserRole = "credit_officer"
	RoleBankManager   UserRole = "bank_manager"
)

// ParseUserRole maps a stored role token to its typed value.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleCreditOfficer, RoleBankManager:
		return UserRole(s), nil
	}
	return "", apperrors.WrapUnknownRole(s)
}

func (r UserRole) String() string {
	return string(r)
}
