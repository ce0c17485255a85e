package internal

import (
	"strconv"
	"strings"

	"github.com/pborman/uuid"
)

// Call-key namespaces (spec §3): activities use the bare counter string,
// sub-workflows prefix a uuid to satisfy the service's global workflow-id
// uniqueness constraint while keeping the decider-visible suffix stable
// across replay, and timers suffix ":t".

// activityCallKey renders the i-th scheduled call's activity call key.
func activityCallKey(i int) string {
	return strconv.Itoa(i)
}

// timerCallKey renders the timer call key for call key k. Spec §9 flags the
// source's timer lookup path as having an undefined-variable defect; this
// is written fresh rather than ported.
func timerCallKey(k string) string {
	return k + ":t"
}

// isTimerCallKey reports whether k is already in the timer namespace.
func isTimerCallKey(k string) bool {
	return strings.HasSuffix(k, ":t")
}

// wrapWorkflowID builds the service-visible workflow id for sub-workflow
// call key k: a fresh uuid prefix, dash, then k.
func wrapWorkflowID(k string) string {
	return uuid.New() + "-" + k
}

// extractCallKey inverts wrapWorkflowID: it strips the 36-character uuid
// prefix and the separating dash, returning the decider-visible call key.
// extract(wrap(k)) == k for all valid k (spec §8 property 4).
func extractCallKey(workflowID string) (string, bool) {
	const uuidLen = 36 // canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
	if len(workflowID) <= uuidLen+1 {
		return "", false
	}
	if workflowID[uuidLen] != '-' {
		return "", false
	}
	return workflowID[uuidLen+1:], true
}
