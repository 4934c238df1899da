package domain

import "encoding/json"

// FieldMessages accepts both a bare string and an array of strings for a
// field's error value, the two shapes the Profile Service has shipped.
type FieldMessages []string

// UnmarshalJSON normalizes string-or-array into a slice.
func (m *FieldMessages) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = FieldMessages{s}
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	*m = FieldMessages(arr)
	return nil
}

// ErrorBody is the wire shape of a Profile Service validation failure.
type ErrorBody struct {
	Message string                   `json:"message"`
	Errors  map[string]FieldMessages `json:"errors"`
}

// Reconcile folds the wire shape into a ValidationError: the first message
// per field wins; a body without usable field entries carries only the
// top-level message and the caller falls back to a generic notice.
func (b ErrorBody) Reconcile() *ValidationError {
	fields := FieldErrors{}
	for name, msgs := range b.Errors {
		if len(msgs) == 0 || msgs[0] == "" {
			continue
		}
		fields[name] = msgs[0]
	}
	if len(fields) == 0 {
		return &ValidationError{Message: b.Message}
	}
	return &ValidationError{Message: b.Message, Fields: fields}
}
