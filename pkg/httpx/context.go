package httpx

type ctxKey string

const (
	// CtxKeyMemberID carries the authenticated member's id, set by the
	// authentication middleware. Empty or absent for anonymous requests.
	CtxKeyMemberID ctxKey = "member_id"

	// CtxKeyPrincipal carries the full resolved principal.
	CtxKeyPrincipal ctxKey = "principal"
)
