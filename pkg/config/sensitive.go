package config

import "encoding/json"

const redactedPlaceholder = "[REDACTED]"

// SensitiveString is a string that redacts itself when printed or marshaled,
// so secrets such as webhook tokens never reach logs or serialized output.
// Use Value() to read the actual content.
type SensitiveString string

func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return redactedPlaceholder
}

// Value returns the underlying secret value.
func (s SensitiveString) Value() string {
	return string(s)
}

func (s SensitiveString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s SensitiveString) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s *SensitiveString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = SensitiveString(v)
	return nil
}
