package events

func FlagNew(id, reporterID, reason string) Event {
	return Event{
		Name: FLAGS_NEW,
		Sign: &UserSign{UserID: reporterID, Reason: reason},
		Params: map[string]interface{}{
			"id": id,
		},
	}
}

// FlagReviewed carries the resulting status so handlers can tell an
// approval from a rejection.
func FlagReviewed(id, status string, sign UserSign) Event {
	return Event{
		Name: FLAGS_REVIEW,
		Sign: &sign,
		Params: map[string]interface{}{
			"id":     id,
			"status": status,
		},
	}
}

func FlagResolved(id, reviewerID string) Event {
	return Event{
		Name: FLAGS_RESOLVE,
		Sign: &UserSign{UserID: reviewerID},
		Params: map[string]interface{}{
			"id": id,
		},
	}
}

func UserBanned(id string, sign UserSign) Event {
	return Event{
		Name: USERS_BAN,
		Sign: &sign,
		Params: map[string]interface{}{
			"id": id,
		},
	}
}

func UserUnbanned(id, callerID string) Event {
	return Event{
		Name: USERS_UNBAN,
		Sign: &UserSign{UserID: callerID},
		Params: map[string]interface{}{
			"id": id,
		},
	}
}

func UserRoleChanged(id, role, callerID string) Event {
	return Event{
		Name: USERS_ROLE,
		Sign: &UserSign{UserID: callerID, Reason: role},
		Params: map[string]interface{}{
			"id":   id,
			"role": role,
		},
	}
}
