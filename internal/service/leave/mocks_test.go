package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workforcehq/hrms-backend-go/internal/domain/employee"
	"github.com/workforcehq/hrms-backend-go/internal/domain/leave"
)

// In-memory repositories. Every mutating call is counted so tests can assert
// that a rejected request issued no write at all.

type mockCategoryRepo struct {
	categories map[string]leave.LeaveCategory
	typeCounts map[string]int64
	writes     int
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{
		categories: make(map[string]leave.LeaveCategory),
		typeCounts: make(map[string]int64),
	}
}

func (m *mockCategoryRepo) Create(_ context.Context, category leave.LeaveCategory) (leave.LeaveCategory, error) {
	m.writes++
	category.ID = fmt.Sprintf("cat-%d", len(m.categories)+1)
	category.CreatedAt = time.Now()
	m.categories[category.ID] = category
	return category, nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (leave.LeaveCategory, error) {
	c, ok := m.categories[id]
	if !ok {
		return leave.LeaveCategory{}, leave.ErrCategoryNotFound
	}
	return c, nil
}

func (m *mockCategoryRepo) List(_ context.Context) ([]leave.LeaveCategory, error) {
	out := make([]leave.LeaveCategory, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, category leave.LeaveCategory) error {
	m.writes++
	if _, ok := m.categories[category.ID]; !ok {
		return leave.ErrCategoryNotFound
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	m.writes++
	if _, ok := m.categories[id]; !ok {
		return leave.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepo) CountTypes(_ context.Context, categoryID string) (int64, error) {
	return m.typeCounts[categoryID], nil
}

type mockTypeRepo struct {
	types  map[string]leave.LeaveType
	writes int
}

func newMockTypeRepo() *mockTypeRepo {
	return &mockTypeRepo{types: make(map[string]leave.LeaveType)}
}

func (m *mockTypeRepo) Create(_ context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	m.writes++
	leaveType.ID = fmt.Sprintf("type-%d", len(m.types)+1)
	m.types[leaveType.ID] = leaveType
	return leaveType, nil
}

func (m *mockTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	t, ok := m.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrTypeNotFound
	}
	return t, nil
}

func (m *mockTypeRepo) GetByCode(_ context.Context, code string) (leave.LeaveType, error) {
	for _, t := range m.types {
		if t.Code == code {
			return t, nil
		}
	}
	return leave.LeaveType{}, leave.ErrTypeNotFound
}

func (m *mockTypeRepo) List(_ context.Context) ([]leave.LeaveType, error) {
	out := make([]leave.LeaveType, 0, len(m.types))
	for _, t := range m.types {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTypeRepo) Update(_ context.Context, leaveType leave.LeaveType) error {
	m.writes++
	if _, ok := m.types[leaveType.ID]; !ok {
		return leave.ErrTypeNotFound
	}
	m.types[leaveType.ID] = leaveType
	return nil
}

func (m *mockTypeRepo) SetEligibility(_ context.Context, id string, eligibility leave.Eligibility) error {
	m.writes++
	t, ok := m.types[id]
	if !ok {
		return leave.ErrTypeNotFound
	}
	t.Eligibility = &eligibility
	m.types[id] = t
	return nil
}

func (m *mockTypeRepo) Delete(_ context.Context, id string) error {
	m.writes++
	if _, ok := m.types[id]; !ok {
		return leave.ErrTypeNotFound
	}
	delete(m.types, id)
	return nil
}

type mockPolicyRepo struct {
	policies map[string]leave.LeavePolicy
	writes   int
}

func newMockPolicyRepo() *mockPolicyRepo {
	return &mockPolicyRepo{policies: make(map[string]leave.LeavePolicy)}
}

func (m *mockPolicyRepo) Create(_ context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	m.writes++
	policy.ID = fmt.Sprintf("policy-%d", len(m.policies)+1)
	m.policies[policy.ID] = policy
	return policy, nil
}

func (m *mockPolicyRepo) GetByID(_ context.Context, id string) (leave.LeavePolicy, error) {
	p, ok := m.policies[id]
	if !ok {
		return leave.LeavePolicy{}, leave.ErrPolicyNotFound
	}
	return p, nil
}

func (m *mockPolicyRepo) GetByLeaveType(_ context.Context, leaveTypeID string) (leave.LeavePolicy, error) {
	for _, p := range m.policies {
		if p.LeaveTypeID == leaveTypeID {
			return p, nil
		}
	}
	return leave.LeavePolicy{}, leave.ErrPolicyNotFound
}

func (m *mockPolicyRepo) List(_ context.Context) ([]leave.LeavePolicy, error) {
	out := make([]leave.LeavePolicy, 0, len(m.policies))
	for _, p := range m.policies {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPolicyRepo) ListByMethod(_ context.Context, method leave.AccrualMethod) ([]leave.LeavePolicy, error) {
	var out []leave.LeavePolicy
	for _, p := range m.policies {
		if p.AccrualMethod == method {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPolicyRepo) Update(_ context.Context, req leave.UpdatePolicyRequest) error {
	m.writes++
	if _, ok := m.policies[req.ID]; !ok {
		return leave.ErrPolicyNotFound
	}
	return nil
}

func (m *mockPolicyRepo) Delete(_ context.Context, id string) error {
	m.writes++
	if _, ok := m.policies[id]; !ok {
		return leave.ErrPolicyNotFound
	}
	delete(m.policies, id)
	return nil
}

type mockCalendarRepo struct {
	calendars map[int]leave.Calendar
}

func newMockCalendarRepo() *mockCalendarRepo {
	return &mockCalendarRepo{calendars: make(map[int]leave.Calendar)}
}

func (m *mockCalendarRepo) Upsert(_ context.Context, calendar leave.Calendar) (leave.Calendar, error) {
	m.calendars[calendar.Year] = calendar
	return calendar, nil
}

func (m *mockCalendarRepo) GetByYear(_ context.Context, year int) (leave.Calendar, error) {
	c, ok := m.calendars[year]
	if !ok {
		return leave.Calendar{}, leave.ErrCalendarNotFound
	}
	return c, nil
}

type entKey struct {
	employeeID  string
	leaveTypeID string
	year        int
}

type mockEntitlementRepo struct {
	entitlements map[string]leave.Entitlement
	byKey        map[entKey]string
	writes       int
	// getErr, when set, is returned by GetByEmployeeAndType to stand in for
	// a failing database.
	getErr error
}

func newMockEntitlementRepo() *mockEntitlementRepo {
	return &mockEntitlementRepo{
		entitlements: make(map[string]leave.Entitlement),
		byKey:        make(map[entKey]string),
	}
}

func (m *mockEntitlementRepo) Create(_ context.Context, ent leave.Entitlement) (leave.Entitlement, error) {
	m.writes++
	ent.ID = fmt.Sprintf("ent-%d", len(m.entitlements)+1)
	m.entitlements[ent.ID] = ent
	m.byKey[entKey{ent.EmployeeID, ent.LeaveTypeID, ent.Year}] = ent.ID
	return ent, nil
}

func (m *mockEntitlementRepo) GetByEmployeeAndType(_ context.Context, employeeID, leaveTypeID string, year int) (leave.Entitlement, error) {
	if m.getErr != nil {
		return leave.Entitlement{}, m.getErr
	}
	id, ok := m.byKey[entKey{employeeID, leaveTypeID, year}]
	if !ok {
		return leave.Entitlement{}, leave.ErrEntitlementNotFound
	}
	return m.entitlements[id], nil
}

func (m *mockEntitlementRepo) ListByEmployee(_ context.Context, employeeID string, year int) ([]leave.Entitlement, error) {
	var out []leave.Entitlement
	for _, e := range m.entitlements {
		if e.EmployeeID == employeeID && e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEntitlementRepo) ListByLeaveType(_ context.Context, leaveTypeID string, year int) ([]leave.Entitlement, error) {
	var out []leave.Entitlement
	for _, e := range m.entitlements {
		if e.LeaveTypeID == leaveTypeID && e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEntitlementRepo) ListByYear(_ context.Context, year int) ([]leave.Entitlement, error) {
	var out []leave.Entitlement
	for _, e := range m.entitlements {
		if e.Year == year {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEntitlementRepo) Update(_ context.Context, update leave.EntitlementUpdate) error {
	m.writes++
	e, ok := m.entitlements[update.ID]
	if !ok {
		return leave.ErrEntitlementNotFound
	}
	if update.YearlyEntitlement != nil {
		e.YearlyEntitlement = *update.YearlyEntitlement
	}
	if update.AccruedActual != nil {
		e.AccruedActual = *update.AccruedActual
	}
	if update.AccruedRounded != nil {
		e.AccruedRounded = *update.AccruedRounded
	}
	if update.CarryForward != nil {
		e.CarryForward = *update.CarryForward
	}
	if update.CarryForwardExpiry != nil {
		e.CarryForwardExpiry = update.CarryForwardExpiry
	}
	if update.LastAccrualDate != nil {
		e.LastAccrualDate = update.LastAccrualDate
	}
	m.entitlements[update.ID] = e
	return nil
}

// ApplyAdjustment mirrors the guarded UPDATE: the write is refused when it
// would drive the remaining balance negative.
func (m *mockEntitlementRepo) ApplyAdjustment(_ context.Context, id string, delta decimal.Decimal) error {
	e, ok := m.entitlements[id]
	if !ok {
		return leave.ErrEntitlementNotFound
	}
	if e.AccruedRounded.Add(delta).Add(e.CarryForward).Sub(e.Taken).Sub(e.Pending).IsNegative() {
		return leave.ErrInsufficientBalance
	}
	m.writes++
	e.AccruedActual = e.AccruedActual.Add(delta)
	e.AccruedRounded = e.AccruedRounded.Add(delta)
	m.entitlements[id] = e
	return nil
}

func (m *mockEntitlementRepo) AddPending(_ context.Context, id string, days decimal.Decimal) error {
	e, ok := m.entitlements[id]
	if !ok {
		return leave.ErrEntitlementNotFound
	}
	if e.Remaining().Sub(days).IsNegative() {
		return leave.ErrInsufficientBalance
	}
	m.writes++
	e.Pending = e.Pending.Add(days)
	m.entitlements[id] = e
	return nil
}

func (m *mockEntitlementRepo) ReleasePending(_ context.Context, id string, days decimal.Decimal) error {
	m.writes++
	e, ok := m.entitlements[id]
	if !ok {
		return leave.ErrEntitlementNotFound
	}
	e.Pending = decimal.Max(e.Pending.Sub(days), decimal.Zero)
	m.entitlements[id] = e
	return nil
}

func (m *mockEntitlementRepo) MovePendingToTaken(_ context.Context, id string, days decimal.Decimal) error {
	m.writes++
	e, ok := m.entitlements[id]
	if !ok {
		return leave.ErrEntitlementNotFound
	}
	e.Pending = decimal.Max(e.Pending.Sub(days), decimal.Zero)
	e.Taken = e.Taken.Add(days)
	m.entitlements[id] = e
	return nil
}

func (m *mockEntitlementRepo) ResetYear(_ context.Context, year int) (int64, error) {
	var count int64
	for id, e := range m.entitlements {
		if e.Year != year {
			continue
		}
		m.writes++
		e.AccruedActual = decimal.Zero
		e.AccruedRounded = decimal.Zero
		e.CarryForward = decimal.Zero
		e.Taken = decimal.Zero
		e.Pending = decimal.Zero
		e.LastAccrualDate = nil
		m.entitlements[id] = e
		count++
	}
	return count, nil
}

type mockAdjustmentRepo struct {
	adjustments []leave.Adjustment
}

func (m *mockAdjustmentRepo) Append(_ context.Context, adjustment leave.Adjustment) (leave.Adjustment, error) {
	adjustment.ID = fmt.Sprintf("adj-%d", len(m.adjustments)+1)
	m.adjustments = append(m.adjustments, adjustment)
	return adjustment, nil
}

func (m *mockAdjustmentRepo) ListByEmployee(_ context.Context, employeeID string, leaveTypeID *string) ([]leave.Adjustment, error) {
	var out []leave.Adjustment
	for _, a := range m.adjustments {
		if a.EmployeeID != employeeID {
			continue
		}
		if leaveTypeID != nil && a.LeaveTypeID != *leaveTypeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type mockAccessRepo struct {
	access map[leave.ConfigSection]leave.SectionAccess
}

func newMockAccessRepo() *mockAccessRepo {
	return &mockAccessRepo{access: make(map[leave.ConfigSection]leave.SectionAccess)}
}

func (m *mockAccessRepo) Get(_ context.Context, section leave.ConfigSection) (leave.SectionAccess, error) {
	a, ok := m.access[section]
	if !ok {
		return leave.SectionAccess{}, leave.ErrSectionForbidden
	}
	return a, nil
}

func (m *mockAccessRepo) List(_ context.Context) ([]leave.SectionAccess, error) {
	out := make([]leave.SectionAccess, 0, len(m.access))
	for _, a := range m.access {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAccessRepo) Set(_ context.Context, access leave.SectionAccess) error {
	m.access[access.Section] = access
	return nil
}

type mockEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (m *mockEmployeeRepo) add(emp employee.Employee) {
	m.employees[emp.ID] = emp
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	m.employees[emp.ID] = emp
	return emp, nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *mockEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, e := range m.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context, _ employee.ListFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, e := range m.employees {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (m *mockEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.employees {
		if e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEmployeeRepo) GetByDepartment(_ context.Context, departmentID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.employees {
		if e.DepartmentID != nil && *e.DepartmentID == departmentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	m.employees[emp.ID] = emp
	return nil
}

type mockRequestRepo struct {
	requests map[string]leave.LeaveRequest
	writes   int
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (m *mockRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	m.writes++
	request.ID = fmt.Sprintf("req-%d", len(m.requests)+1)
	m.requests[request.ID] = request
	return request, nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrRequestNotFound
	}
	return r, nil
}

func (m *mockRequestRepo) List(_ context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *mockRequestRepo) UpdateStatus(_ context.Context, id string, status leave.RequestStatus, approverID *string, rejectionReason *string) error {
	r, ok := m.requests[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	if r.Status != leave.RequestStatusPending {
		return leave.ErrRequestProcessed
	}
	m.writes++
	r.Status = status
	r.ApproverID = approverID
	r.RejectionReason = rejectionReason
	now := time.Now()
	r.DecidedAt = &now
	m.requests[id] = r
	return nil
}
