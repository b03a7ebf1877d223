package entity

// Roles de planta.
const (
	RoleAdmin      = "Admin"
	RoleManagement = "Management"
	RoleQuality    = "Quality"
	RoleOperator   = "Operator"
	RoleSupervisor = "Supervisor"
	RolePlanner    = "Planner"
	RoleWarehouse  = "Warehouse"
	RoleShipping   = "Shipping"
)

// Role rol con su permiso de ver precios.
type Role struct {
	ID            string
	Name          string
	CanViewPrices bool
	Description   string
}

// User usuario de planta. BadgeID identifica al operador en el escáner QR.
type User struct {
	ID       string
	Username string
	Email    string
	RoleID   string
	RoleName string
	BadgeID  *string
	FullName string
	IsActive bool
}
