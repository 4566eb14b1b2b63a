package repository

import "encoding/json"

// Role labels are persisted as a JSON array in a text column. This is the
// single encode/decode pair for that column; no other call site parses it.

func encodeRoles(roles []string) string {
	if len(roles) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(roles)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeRoles(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var roles []string
	if err := json.Unmarshal([]byte(raw), &roles); err != nil {
		return []string{}
	}
	if roles == nil {
		return []string{}
	}
	return roles
}
