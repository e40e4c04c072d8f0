package domain

// AdminActor is a capability token proving the caller passed admin
// verification. Only the admin verifier constructs one; user-facing code
// paths have no way to mint it, so admin-only operations are gated by the
// type system rather than a nullable admin_id parameter.
type AdminActor struct {
	AdminID  int64
	Username string
}

// SystemActor tags a call originating from a verified automated recovery
// job. Context names the job for the audit trail and must be non-empty.
type SystemActor struct {
	Context string
}
