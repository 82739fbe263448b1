package mda

import (
	"bytes"
	"encoding/json"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces the canonical JSON encoding of one event, used
// for golden snapshots and stored event payloads.
//
// The encoding is byte-deterministic for a given event:
//   - struct field order is fixed by the MDAEvent declaration
//   - index member order is the index's own insertion order
//   - strings are NFC normalized at the serialization boundary
//   - HTML characters (< > &) are not escaped
//   - floats use Go's shortest round-trip representation
func MarshalCanonical(ev *MDAEvent) ([]byte, error) {
	c := *ev
	c.PosName = norm.NFC.String(ev.PosName)
	if ev.Channel != nil {
		ch := EventChannel{
			Config: norm.NFC.String(ev.Channel.Config),
			Group:  norm.NFC.String(ev.Channel.Group),
		}
		c.Channel = &ch
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&c); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return out, nil
}

// MarshalStreamCanonical encodes a whole event stream as newline-delimited
// canonical JSON, one event per line. Re-encoding the stream produced by
// re-iterating the same sequence yields byte-identical output.
func MarshalStreamCanonical(events []MDAEvent) ([]byte, error) {
	var buf bytes.Buffer
	for i := range events {
		line, err := MarshalCanonical(&events[i])
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
