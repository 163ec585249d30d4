package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback payloads are "verb_id" for per-ticket actions and bare or
// "prefix_key" strings for navigation. The verb may itself contain
// underscores, so the id is split off from the right.

// EncodeAction builds a per-ticket callback payload.
func EncodeAction(verb string, ticketID int64) string {
	return fmt.Sprintf("%s_%d", verb, ticketID)
}

// DecodeAction splits a per-ticket callback payload into verb and id.
func DecodeAction(data string) (verb string, ticketID int64, err error) {
	idx := strings.LastIndexByte(data, '_')
	if idx <= 0 || idx == len(data)-1 {
		return "", 0, fmt.Errorf("malformed callback payload %q", data)
	}
	id, err := strconv.ParseInt(data[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed ticket id in %q", data)
	}
	return data[:idx], id, nil
}

// EncodeKey builds a "prefix_key" navigation payload.
func EncodeKey(prefix, key string) string {
	return prefix + "_" + key
}

// DecodeKey strips a known prefix from a navigation payload.
func DecodeKey(data, prefix string) (string, bool) {
	if !strings.HasPrefix(data, prefix+"_") {
		return "", false
	}
	return data[len(prefix)+1:], true
}
