package models

// Actions an operator can take on a referral.
const (
	ActionActivate   = "activate"
	ActionAccept     = "accept"
	ActionComplete   = "complete"
	ActionCancel     = "cancel"
	ActionVoid       = "void"
	ActionReactivate = "reactivate"
)

// transitionMap lists the source statuses each action may fire from.
// completed and cancelled appear nowhere: they are terminal. voided is
// terminal except for the explicit reactivate action.
var transitionMap = map[string][]ReferralStatus{
	ActionActivate:   {ReferralPending},
	ActionAccept:     {ReferralPending, ReferralActive},
	ActionComplete:   {ReferralActive, ReferralAccepted},
	ActionCancel:     {ReferralPending, ReferralActive, ReferralAccepted},
	ActionVoid:       {ReferralPending, ReferralActive, ReferralAccepted},
	ActionReactivate: {ReferralVoided},
}

// targetMap gives the status each action lands in.
var targetMap = map[string]ReferralStatus{
	ActionActivate:   ReferralActive,
	ActionAccept:     ReferralAccepted,
	ActionComplete:   ReferralCompleted,
	ActionCancel:     ReferralCancelled,
	ActionVoid:       ReferralVoided,
	ActionReactivate: ReferralActive,
}

// ValidTransition reports whether action may fire from fromStatus.
func ValidTransition(action string, fromStatus ReferralStatus) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}

// TargetStatus returns the destination status for action; ok is false for
// unknown actions.
func TargetStatus(action string) (ReferralStatus, bool) {
	t, ok := targetMap[action]
	return t, ok
}

// Terminal reports whether the sweep and ordinary actions must leave the
// status alone.
func Terminal(status ReferralStatus) bool {
	return status == ReferralCompleted || status == ReferralCancelled || status == ReferralVoided
}
