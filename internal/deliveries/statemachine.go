package deliveries

import (
	"strings"

	"github.com/avelara/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
)

// Transition defines a valid status change and who can perform it.
type Transition struct {
	From  enums.DeliveryStatus
	To    enums.DeliveryStatus
	Actor enums.Role
}

// validTransitions is the authoritative workflow definition.
var validTransitions = []Transition{
	// Merchant assigns a driver to a pending delivery
	{From: enums.DeliveryStatusPending, To: enums.DeliveryStatusAssigned, Actor: enums.RoleMerchant},
	// Driver starts the run
	{From: enums.DeliveryStatusAssigned, To: enums.DeliveryStatusInProgress, Actor: enums.RoleDriver},
	{From: enums.DeliveryStatusAssigned, To: enums.DeliveryStatusInProgress, Actor: enums.RoleMerchant},
	// Driver completes the run
	{From: enums.DeliveryStatusInProgress, To: enums.DeliveryStatusDelivered, Actor: enums.RoleDriver},
	{From: enums.DeliveryStatusInProgress, To: enums.DeliveryStatusDelivered, Actor: enums.RoleMerchant},
}

type transitionKey struct {
	From  enums.DeliveryStatus
	To    enums.DeliveryStatus
	Actor enums.Role
}

// transitionMap gives O(1) validation lookups.
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state.
func ValidTransitionsFrom(status enums.DeliveryStatus) []enums.DeliveryStatus {
	var nexts []enums.DeliveryStatus
	seen := map[enums.DeliveryStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks whether the actor may move a delivery between the two states.
func CanTransition(from, to enums.DeliveryStatus, actor enums.Role) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return pkgerrors.New(
		pkgerrors.CodeStateConflict,
		"invalid transition: "+string(from)+" to "+string(to)+
			" is not allowed for role '"+string(actor)+"'. "+
			"Valid transitions from "+string(from)+" are: "+describeValidFrom(from),
	)
}

func describeValidFrom(status enums.DeliveryStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	labels := make([]string, len(nexts))
	for i, s := range nexts {
		labels[i] = string(s)
	}
	return strings.Join(labels, ", ")
}

// AllTransitions returns the full workflow table for documentation endpoints.
func AllTransitions() []Transition {
	return validTransitions
}
