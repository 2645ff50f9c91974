package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey          = "authenticated"
	KeyActorType     = "actor_type"
	KeyActorID       = "actor_id"
	KeyProviderID    = "provider_id"
	KeyName          = "name"
	KeyFromProtected = "from_protected"
)

// Actor types stored in the session
const (
	ActorProvider = "provider"
	ActorCustomer = "customer"
)
