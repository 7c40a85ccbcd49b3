package models

// ResourceType discriminates the two ownable resource kinds.
type ResourceType string

const (
	ResourceFile   ResourceType = "file"
	ResourceFolder ResourceType = "folder"
)

func (r ResourceType) Valid() bool {
	return r == ResourceFile || r == ResourceFolder
}

// Role is the access level a principal resolves to on a resource.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ValidShareRole reports whether the role may be granted on a share.
// Ownership is never grantable.
func ValidShareRole(r Role) bool {
	return r == RoleEditor || r == RoleViewer
}
