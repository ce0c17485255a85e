// Package converter provides the pluggable input/result codec the engine
// treats as an external collaborator (spec §1): "input/output payload
// codecs, which are pluggable". Mirrors the teacher's DataConverter split
// in internal/encoded.go, adapted to the string payload wire format this
// service family uses instead of protobuf Payloads.
package converter

import "encoding/json"

// DataConverter serializes and deserializes the two payload shapes this
// engine moves over the wire: a call's positional argument list (workflow
// input, activity/child-workflow input), and a single terminal value
// (an activity's or workflow's result). ProxyConfig carries one
// DataConverter for each direction (spec §3: "input codec, result codec").
type DataConverter interface {
	// ToArgs encodes a positional argument list the way a schedule_activity_task
	// or start_child_workflow_execution decision's input field expects.
	ToArgs(args ...interface{}) (string, error)
	// FromArgs decodes an argument-list payload into valuePtrs, positionally.
	FromArgs(data string, valuePtrs ...interface{}) error

	// ToValue encodes a single terminal value, as used by finish/restart and
	// by an activity completing with a result.
	ToValue(v interface{}) (string, error)
	// FromValue decodes a single terminal value payload into ptr.
	FromValue(data string, ptr interface{}) error
}

// JSONDataConverter is the default DataConverter, used whenever a
// ProxyConfig or workflow registration does not specify one.
type JSONDataConverter struct{}

// ToArgs encodes args as the [args, kwargs] envelope the original
// implementation's histories already use (spec §8 scenarios: input="[[7], {}]").
// Kwargs is always encoded empty; Go call sites only ever use positional args.
func (JSONDataConverter) ToArgs(args ...interface{}) (string, error) {
	raw := make([]json.RawMessage, 0, len(args))
	for _, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", err
		}
		raw = append(raw, b)
	}
	if raw == nil {
		raw = []json.RawMessage{}
	}
	out, err := json.Marshal([2]interface{}{raw, map[string]interface{}{}})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FromArgs decodes an [args, kwargs] envelope into valuePtrs, positionally.
// Extra valuePtrs beyond the encoded args are left untouched; extra encoded
// args beyond valuePtrs are ignored.
func (JSONDataConverter) FromArgs(data string, valuePtrs ...interface{}) error {
	var tuple [2]json.RawMessage
	if err := json.Unmarshal([]byte(data), &tuple); err != nil {
		return err
	}
	var args []json.RawMessage
	if err := json.Unmarshal(tuple[0], &args); err != nil {
		return err
	}
	for i, ptr := range valuePtrs {
		if i >= len(args) {
			break
		}
		if err := json.Unmarshal(args[i], ptr); err != nil {
			return err
		}
	}
	return nil
}

// ToValue encodes v as a bare JSON scalar/object, matching how activity and
// workflow results appear in histories (e.g. result="14", not an envelope).
func (JSONDataConverter) ToValue(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromValue decodes a bare JSON payload into ptr.
func (JSONDataConverter) FromValue(data string, ptr interface{}) error {
	return json.Unmarshal([]byte(data), ptr)
}

// Default is the package-level JSONDataConverter instance most call sites use.
var Default DataConverter = JSONDataConverter{}
