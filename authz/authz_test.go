package authz

import (
	"testing"

	"github.com/sajibgoswami11/laundry-app-v2/models"

	"github.com/stretchr/testify/assert"
)

func TestDecideUnauthenticated(t *testing.T) {
	res := Resource{Kind: KindOrder, OwnerID: 1, ShopOwnerID: 2}

	assert.ErrorIs(t, Decide(nil, ActionUpdate, res), ErrUnauthenticated)
	assert.ErrorIs(t, Decide(&Identity{}, ActionUpdate, res), ErrUnauthenticated)
}

func TestDecideOrder(t *testing.T) {
	order := Resource{Kind: KindOrder, OwnerID: 10, ShopOwnerID: 20}

	owner := &Identity{UserID: 10, Role: models.RoleCustomer}
	shopOwner := &Identity{UserID: 20, Role: models.RoleShopOwner}
	admin := &Identity{UserID: 99, Role: models.RoleAdmin}
	stranger := &Identity{UserID: 30, Role: models.RoleCustomer}
	otherShopOwner := &Identity{UserID: 40, Role: models.RoleShopOwner}

	for _, action := range []Action{ActionRead, ActionUpdate} {
		assert.NoError(t, Decide(owner, action, order), "owning customer, %s", action)
		assert.NoError(t, Decide(shopOwner, action, order), "owning shop's owner, %s", action)
		assert.NoError(t, Decide(admin, action, order), "admin, %s", action)
		assert.ErrorIs(t, Decide(stranger, action, order), ErrForbidden, "unrelated customer, %s", action)
		assert.ErrorIs(t, Decide(otherShopOwner, action, order), ErrForbidden, "other shop's owner, %s", action)
	}

	// any customer may create an order as themselves
	assert.NoError(t, Decide(stranger, ActionCreate, order))
	assert.ErrorIs(t, Decide(otherShopOwner, ActionCreate, order), ErrForbidden)
}

func TestDecideShop(t *testing.T) {
	approved := Resource{Kind: KindShop, OwnerID: 20, Approved: true}
	unapproved := Resource{Kind: KindShop, OwnerID: 20, Approved: false}

	customer := &Identity{UserID: 10, Role: models.RoleCustomer}
	owner := &Identity{UserID: 20, Role: models.RoleShopOwner}
	otherOwner := &Identity{UserID: 40, Role: models.RoleShopOwner}
	admin := &Identity{UserID: 99, Role: models.RoleAdmin}

	// read: approved shops visible to any authenticated user
	assert.NoError(t, Decide(customer, ActionRead, approved))
	assert.NoError(t, Decide(owner, ActionRead, unapproved))
	assert.NoError(t, Decide(admin, ActionRead, unapproved))
	assert.ErrorIs(t, Decide(customer, ActionRead, unapproved), ErrForbidden)
	assert.ErrorIs(t, Decide(otherOwner, ActionRead, unapproved), ErrForbidden)

	// update: owning shop owner or admin only
	assert.NoError(t, Decide(owner, ActionUpdate, approved))
	assert.NoError(t, Decide(admin, ActionUpdate, approved))
	assert.ErrorIs(t, Decide(otherOwner, ActionUpdate, approved), ErrForbidden)
	assert.ErrorIs(t, Decide(customer, ActionUpdate, approved), ErrForbidden)

	// create: admin only
	assert.ErrorIs(t, Decide(owner, ActionCreate, unapproved), ErrForbidden)
	assert.NoError(t, Decide(admin, ActionCreate, unapproved))
}

func TestDecideService(t *testing.T) {
	service := Resource{Kind: KindService, OwnerID: 20}

	customer := &Identity{UserID: 10, Role: models.RoleCustomer}
	owner := &Identity{UserID: 20, Role: models.RoleShopOwner}
	otherOwner := &Identity{UserID: 40, Role: models.RoleShopOwner}

	assert.NoError(t, Decide(customer, ActionRead, service))
	assert.NoError(t, Decide(owner, ActionCreate, service))
	assert.NoError(t, Decide(owner, ActionUpdate, service))
	assert.NoError(t, Decide(owner, ActionDelete, service))
	assert.ErrorIs(t, Decide(otherOwner, ActionUpdate, service), ErrForbidden)
	assert.ErrorIs(t, Decide(customer, ActionCreate, service), ErrForbidden)
}

func TestDecideUserRole(t *testing.T) {
	res := Resource{Kind: KindUserRole, OwnerID: 10}

	assert.NoError(t, Decide(&Identity{UserID: 99, Role: models.RoleAdmin}, ActionUpdate, res))
	assert.ErrorIs(t, Decide(&Identity{UserID: 10, Role: models.RoleCustomer}, ActionUpdate, res), ErrForbidden)
	assert.ErrorIs(t, Decide(&Identity{UserID: 20, Role: models.RoleShopOwner}, ActionUpdate, res), ErrForbidden)
}

func TestDecideFailsClosedOnUnknownKind(t *testing.T) {
	id := &Identity{UserID: 10, Role: models.RoleCustomer}
	assert.ErrorIs(t, Decide(id, ActionRead, Resource{Kind: "mystery"}), ErrForbidden)
}
