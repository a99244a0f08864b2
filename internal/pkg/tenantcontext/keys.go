package tenantcontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey          = "authenticated"
	KeyTenantID      = "tenant_id"
	KeyTenantName    = "tenant_name"
	KeyFromProtected = "from_protected"
)
