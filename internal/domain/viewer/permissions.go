package viewer

import "enscal/internal/domain/member"

// Modules and actions known to the permission table.
const (
	ModuleCalendar = "calendar"
	ModuleExport   = "export"

	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type permissionKey struct {
	role   member.Role
	module string
	action string
}

// permissionTable is the static role/module/action mapping, loaded once per
// process. Entries absent from the table are denied.
var permissionTable = map[permissionKey]bool{
	{member.RoleSuperAdmin, ModuleCalendar, ActionView}:   true,
	{member.RoleSuperAdmin, ModuleCalendar, ActionCreate}: true,
	{member.RoleSuperAdmin, ModuleCalendar, ActionUpdate}: true,
	{member.RoleSuperAdmin, ModuleCalendar, ActionDelete}: true,
	{member.RoleSuperAdmin, ModuleExport, ActionView}:     true,

	{member.RoleAdmin, ModuleCalendar, ActionView}:   true,
	{member.RoleAdmin, ModuleCalendar, ActionCreate}: true,
	{member.RoleAdmin, ModuleCalendar, ActionUpdate}: true,
	{member.RoleAdmin, ModuleCalendar, ActionDelete}: true,
	{member.RoleAdmin, ModuleExport, ActionView}:     true,

	{member.RoleMember, ModuleCalendar, ActionView}:   true,
	{member.RoleMember, ModuleCalendar, ActionCreate}: true,
	{member.RoleMember, ModuleCalendar, ActionUpdate}: true,
	{member.RoleMember, ModuleCalendar, ActionDelete}: true,
	{member.RoleMember, ModuleExport, ActionView}:     true,
}

// Allowed reports whether the given role may perform action on module.
// Note: for calendar mutations this is the coarse gate only; ownership and
// team checks are enforced by the event service on top of it.
func Allowed(role member.Role, module, action string) bool {
	return permissionTable[permissionKey{role, module, action}]
}
