package domain

import "time"

type ToolStatus string

const (
	ToolStatusAvailable   ToolStatus = "AVAILABLE"
	ToolStatusMaintenance ToolStatus = "MAINTENANCE"
	ToolStatusUnavailable ToolStatus = "UNAVAILABLE"
)

type ToolRiskLevel string

const (
	ToolRiskLow    ToolRiskLevel = "LOW"
	ToolRiskMedium ToolRiskLevel = "MEDIUM"
	ToolRiskHigh   ToolRiskLevel = "HIGH"
)

type Tool struct {
	ID              int32         `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Category        string        `json:"category"`
	TotalStock      int32         `json:"total_stock"`
	AvailableStock  int32         `json:"available_stock"`
	HourlyRateCents int64         `json:"hourly_rate_cents"`
	RiskLevel       ToolRiskLevel `json:"risk_level"`
	Status          ToolStatus    `json:"status"`
	ImageURL        string        `json:"image_url,omitempty"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
}
