package deliveries

import (
	"strings"
	"testing"

	"github.com/avelara/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
)

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		name  string
		from  enums.DeliveryStatus
		to    enums.DeliveryStatus
		actor enums.Role
		ok    bool
	}{
		{"merchant assigns pending", enums.DeliveryStatusPending, enums.DeliveryStatusAssigned, enums.RoleMerchant, true},
		{"driver starts assigned", enums.DeliveryStatusAssigned, enums.DeliveryStatusInProgress, enums.RoleDriver, true},
		{"driver completes run", enums.DeliveryStatusInProgress, enums.DeliveryStatusDelivered, enums.RoleDriver, true},
		{"merchant completes run", enums.DeliveryStatusInProgress, enums.DeliveryStatusDelivered, enums.RoleMerchant, true},
		{"driver cannot assign", enums.DeliveryStatusPending, enums.DeliveryStatusAssigned, enums.RoleDriver, false},
		{"client cannot progress", enums.DeliveryStatusAssigned, enums.DeliveryStatusInProgress, enums.RoleClient, false},
		{"no skipping states", enums.DeliveryStatusPending, enums.DeliveryStatusDelivered, enums.RoleMerchant, false},
		{"no going backwards", enums.DeliveryStatusDelivered, enums.DeliveryStatusPending, enums.RoleMerchant, false},
		{"delivered is terminal", enums.DeliveryStatusDelivered, enums.DeliveryStatusInProgress, enums.RoleDriver, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to, tc.actor)
			if tc.ok && err != nil {
				t.Fatalf("expected transition to be allowed, got %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected transition to be rejected")
				}
				if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeStateConflict {
					t.Fatalf("expected state conflict, got %s", code)
				}
			}
		})
	}
}

func TestCanTransitionErrorNamesValidTargets(t *testing.T) {
	err := CanTransition(enums.DeliveryStatusAssigned, enums.DeliveryStatusDelivered, enums.RoleDriver)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), string(enums.DeliveryStatusInProgress)) {
		t.Fatalf("error should list valid next states, got %q", err.Error())
	}

	err = CanTransition(enums.DeliveryStatusDelivered, enums.DeliveryStatusPending, enums.RoleMerchant)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "terminal") {
		t.Fatalf("terminal state should be named, got %q", err.Error())
	}
}

func TestValidTransitionsFromDeduplicatesActors(t *testing.T) {
	nexts := ValidTransitionsFrom(enums.DeliveryStatusInProgress)
	if len(nexts) != 1 || nexts[0] != enums.DeliveryStatusDelivered {
		t.Fatalf("unexpected next states %v", nexts)
	}
	if nexts := ValidTransitionsFrom(enums.DeliveryStatusDelivered); len(nexts) != 0 {
		t.Fatalf("delivered should be terminal, got %v", nexts)
	}
}
