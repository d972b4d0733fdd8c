package auth

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Permission int

const (
	PermDeleteAnyItem Permission = iota + 1
	PermManageOrders
	PermManageCatalog
	PermViewSellerOrders
)

var rolePermissions = map[Role]map[Permission]bool{
	RoleUser: {},
	RoleAdmin: {
		PermDeleteAnyItem:    true,
		PermManageOrders:     true,
		PermManageCatalog:    true,
		PermViewSellerOrders: true,
	},
}

func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether r grants p. Unknown roles grant nothing.
func (r Role) Can(p Permission) bool {
	return rolePermissions[r][p]
}
