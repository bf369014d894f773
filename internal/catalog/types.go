// Package catalog provides the client for the activities REST API.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Activity describes one sign-up activity as reported by the server.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft reports the remaining capacity. The value is derived on demand and
// may be negative when the server reports an over-capacity roster; callers
// must not clamp it.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Catalog is the full set of activities at a point in time, keyed by activity
// name. Iteration order matches the order of keys in the server response; the
// server's object order is the display order, so a plain Go map would not do.
type Catalog struct {
	names  []string
	byName map[string]Activity
}

// Names returns the activity names in server order.
func (c Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Get returns the named activity.
func (c Catalog) Get(name string) (Activity, bool) {
	activity, ok := c.byName[name]
	return activity, ok
}

// Len reports the number of activities.
func (c Catalog) Len() int {
	return len(c.names)
}

// UnmarshalJSON decodes the server's activity object while preserving key
// order. A repeated key keeps its first position and last value.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode catalog: expected object, got %v", tok)
	}

	names := make([]string, 0)
	byName := make(map[string]Activity)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode catalog key: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode catalog key: expected string, got %v", keyTok)
		}
		var activity Activity
		if err := dec.Decode(&activity); err != nil {
			return fmt.Errorf("decode activity %q: %w", name, err)
		}
		if _, seen := byName[name]; !seen {
			names = append(names, name)
		}
		byName[name] = activity
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	c.names = names
	c.byName = byName
	return nil
}
