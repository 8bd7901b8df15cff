package notification

import "time"

type NotificationType string

const (
	TypeLeaveRequested     NotificationType = "leave_requested"
	TypeLeaveApproved      NotificationType = "leave_approved"
	TypeLeaveRejected      NotificationType = "leave_rejected"
	TypeAdjustmentApplied  NotificationType = "adjustment_applied"
	TypePayrollSubmitted   NotificationType = "payroll_submitted"
	TypePayrollApproved    NotificationType = "payroll_approved"
	TypePayrollRejected    NotificationType = "payroll_rejected"
	TypeDisputeFiled       NotificationType = "dispute_filed"
	TypeDisputeResolved    NotificationType = "dispute_resolved"
	TypeScheduleUpdated    NotificationType = "schedule_updated"
)

type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
