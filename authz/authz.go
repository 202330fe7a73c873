// Package authz is the single authorization decision point. Every handler
// that touches an owned resource calls Decide with the caller's identity and
// the resource's ownership facts; nothing in here reads the database or the
// request context.
package authz

import (
	"errors"

	"github.com/sajibgoswami11/laundry-app-v2/models"
)

var (
	// ErrUnauthenticated means no valid identity was presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the identity is valid but lacks rights.
	ErrForbidden = errors.New("insufficient rights for this resource")
)

// Action is the kind of operation being attempted.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Identity is the resolved caller. A nil *Identity means unauthenticated.
type Identity struct {
	UserID uint
	Role   models.UserRole
}

// ResourceKind selects which row of the rule table applies.
type ResourceKind string

const (
	KindOrder    ResourceKind = "order"
	KindShop     ResourceKind = "shop"
	KindService  ResourceKind = "service"
	KindUserRole ResourceKind = "user_role"
)

// Resource carries the ownership facts the rule table needs. OwnerID is the
// owning customer for orders and the owning user for shops/services;
// ShopOwnerID is the owning shop's owner, set for orders only.
type Resource struct {
	Kind        ResourceKind
	OwnerID     uint
	ShopOwnerID uint
	Approved    bool
}

// Decide applies the rule table and fails closed: anything not explicitly
// allowed is denied.
func Decide(id *Identity, action Action, res Resource) error {
	if id == nil || id.UserID == 0 {
		return ErrUnauthenticated
	}
	if id.Role == models.RoleAdmin {
		return nil
	}

	switch res.Kind {
	case KindOrder:
		switch action {
		case ActionCreate:
			if id.Role == models.RoleCustomer {
				return nil
			}
		case ActionRead, ActionUpdate:
			if id.UserID == res.OwnerID || id.UserID == res.ShopOwnerID {
				return nil
			}
		}
	case KindShop:
		switch action {
		case ActionRead:
			// unapproved shops are visible only to their owner (and admins)
			if res.Approved || id.UserID == res.OwnerID {
				return nil
			}
		case ActionUpdate:
			if id.Role == models.RoleShopOwner && id.UserID == res.OwnerID {
				return nil
			}
		}
	case KindService:
		switch action {
		case ActionRead:
			return nil
		case ActionCreate, ActionUpdate, ActionDelete:
			if id.Role == models.RoleShopOwner && id.UserID == res.OwnerID {
				return nil
			}
		}
	case KindUserRole:
		// role changes are admin only, handled above
	}
	return ErrForbidden
}
