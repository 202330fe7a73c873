package statemachine

import (
	"errors"

	"github.com/sajibgoswami11/laundry-app-v2/models"
)

// Actors who can drive order transitions
const (
	ActorShop     = "shop"
	ActorCustomer = "customer"
	ActorAdmin    = "admin"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// validTransitions is the authoritative state machine definition.
// Shops drive the forward path; customers may only cancel before the
// laundry is being worked on. Admins can do anything a shop can plus
// cancel on a customer's behalf.
var validTransitions = []Transition{
	// Shop accepts the order
	{From: models.StatusPending, To: models.StatusAccepted, Actor: ActorShop},
	{From: models.StatusPending, To: models.StatusAccepted, Actor: ActorAdmin},
	// Shop or Customer can cancel a PENDING order
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorShop},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorCustomer},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorAdmin},
	// Shop starts washing
	{From: models.StatusAccepted, To: models.StatusInProgress, Actor: ActorShop},
	{From: models.StatusAccepted, To: models.StatusInProgress, Actor: ActorAdmin},
	// Shop or Customer can still cancel an ACCEPTED order
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: ActorShop},
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: ActorCustomer},
	{From: models.StatusAccepted, To: models.StatusCancelled, Actor: ActorAdmin},
	// Shop marks the laundry ready for delivery
	{From: models.StatusInProgress, To: models.StatusReady, Actor: ActorShop},
	{From: models.StatusInProgress, To: models.StatusReady, Actor: ActorAdmin},
	// Shop hands the order back to the customer
	{From: models.StatusReady, To: models.StatusDelivered, Actor: ActorShop},
	{From: models.StatusReady, To: models.StatusDelivered, Actor: ActorAdmin},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
