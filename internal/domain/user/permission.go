package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Leave Configuration
	PermissionLeaveConfigManage Permission = "leave.config_manage"
	PermissionLeaveAdjust       Permission = "leave.adjust"
	PermissionLeaveRunAccrual   Permission = "leave.run_accrual"
	PermissionLeaveApprove      Permission = "leave.approve"
	PermissionLeaveViewOwn      Permission = "leave.view_own"
	PermissionLeaveRequest      Permission = "leave.request"

	// Payroll
	PermissionPayrollView    Permission = "payroll.view"
	PermissionPayrollSubmit  Permission = "payroll.submit"
	PermissionPayrollApprove Permission = "payroll.approve"
	PermissionPayrollLock    Permission = "payroll.lock"

	// Performance
	PermissionPerformanceView       Permission = "performance.view"
	PermissionPerformanceAdjudicate Permission = "performance.adjudicate"
	PermissionDisputeFile           Permission = "performance.dispute_file"

	// Schedules
	PermissionScheduleView   Permission = "schedule.view"
	PermissionScheduleManage Permission = "schedule.manage"

	// Analytics and reports
	PermissionAnalyticsView Permission = "analytics.view"
	PermissionReportsManage Permission = "reports.manage"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSystemAdmin: {
		PermissionViewOwnProfile,
		PermissionLeaveConfigManage,
		PermissionLeaveAdjust,
		PermissionLeaveRunAccrual,
		PermissionLeaveApprove,
		PermissionLeaveViewOwn,
		PermissionLeaveRequest,
		PermissionPayrollView,
		PermissionPayrollSubmit,
		PermissionPayrollApprove,
		PermissionPayrollLock,
		PermissionPerformanceView,
		PermissionPerformanceAdjudicate,
		PermissionDisputeFile,
		PermissionScheduleView,
		PermissionScheduleManage,
		PermissionAnalyticsView,
		PermissionReportsManage,
		PermissionUserManage,
	},
	RoleHRAdmin: {
		PermissionViewOwnProfile,
		PermissionLeaveConfigManage,
		PermissionLeaveAdjust,
		PermissionLeaveRunAccrual,
		PermissionLeaveApprove,
		PermissionLeaveViewOwn,
		PermissionLeaveRequest,
		PermissionPerformanceView,
		PermissionScheduleView,
		PermissionAnalyticsView,
	},
	RoleHRManager: {
		PermissionViewOwnProfile,
		PermissionLeaveApprove,
		PermissionLeaveViewOwn,
		PermissionLeaveRequest,
		PermissionPerformanceView,
		PermissionPerformanceAdjudicate,
		PermissionScheduleView,
		PermissionAnalyticsView,
	},
	RolePayrollStaff: {
		PermissionViewOwnProfile,
		PermissionPayrollView,
		PermissionPayrollSubmit,
		PermissionLeaveViewOwn,
		PermissionLeaveRequest,
	},
	RoleFinanceStaff: {
		PermissionViewOwnProfile,
		PermissionPayrollView,
		PermissionPayrollApprove,
		PermissionPayrollLock,
		PermissionReportsManage,
		PermissionAnalyticsView,
		PermissionLeaveViewOwn,
		PermissionLeaveRequest,
	},
	RoleDepartmentHead: {
		PermissionViewOwnProfile,
		PermissionLeaveApprove,
		PermissionLeaveViewOwn,
		PermissionLeaveRequest,
		PermissionScheduleView,
		PermissionScheduleManage,
		PermissionAnalyticsView,
		PermissionPerformanceView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveRequest,
		PermissionDisputeFile,
		PermissionScheduleView,
	},
}

// HasPermission checks whether a role carries a permission.
func HasPermission(role Role, permission Permission) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
