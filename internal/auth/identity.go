package auth

import "context"

// Identity is the resolved owner of a request. An empty UserID means guest
// mode: no cross-device identity, all records scoped to the local "guest"
// namespace.
type Identity struct {
	UserID string
}

func (id Identity) IsGuest() bool {
	return id.UserID == ""
}

// OwnerKey is the storage namespace key: the user ID, or "guest".
func (id Identity) OwnerKey() string {
	if id.IsGuest() {
		return "guest"
	}
	return id.UserID
}

type identityCtxKey struct{}

func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityCtxKey{}).(Identity); ok {
		return id
	}
	return Identity{}
}
