package employee

import "context"

// EmployeeRepository - interface for the employees table
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	GetActive(ctx context.Context) ([]Employee, error)
	GetByDepartment(ctx context.Context, departmentID string) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error
}

// DepartmentRepository - interface for the departments table
type DepartmentRepository interface {
	Create(ctx context.Context, dept Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context) ([]Department, error)
}
