package internal

import "fmt"

// TypeID names a registered workflow or activity type. The two namespaces
// (workflow types, activity types) are independent even when name/version
// collide across them.
type TypeID struct {
	Name    string
	Version string
}

// String renders a TypeID the way the service's error messages and logs do.
func (t TypeID) String() string {
	return fmt.Sprintf("%s/%s", t.Name, t.Version)
}

// ChildPolicy is the SWF child-policy enum, always normalized to upper-case
// before it is validated or transmitted (spec §9 open question 3).
type ChildPolicy string

const (
	// ChildPolicyUnset means the caller did not specify a policy.
	ChildPolicyUnset ChildPolicy = ""
	// ChildPolicyTerminate terminates children when the parent closes.
	ChildPolicyTerminate ChildPolicy = "TERMINATE"
	// ChildPolicyRequestCancel requests cancellation of children.
	ChildPolicyRequestCancel ChildPolicy = "REQUEST_CANCEL"
	// ChildPolicyAbandon leaves children running independently.
	ChildPolicyAbandon ChildPolicy = "ABANDON"
)

func (c ChildPolicy) valid() bool {
	switch c {
	case ChildPolicyUnset, ChildPolicyTerminate, ChildPolicyRequestCancel, ChildPolicyAbandon:
		return true
	default:
		return false
	}
}
