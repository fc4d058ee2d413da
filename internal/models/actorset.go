package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ActorSet is a unique-membership collection of user IDs, stored as a JSON
// array. Order is not meaningful. It backs likes, downvotes and poll votes.
type ActorSet []string

func (s ActorSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *ActorSet) Scan(value interface{}) error {
	if value == nil {
		*s = ActorSet{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("actor set: unsupported column type")
	}

	if len(data) == 0 {
		*s = ActorSet{}
		return nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = ids
	return nil
}

func (s ActorSet) Contains(id string) bool {
	for _, member := range s {
		if member == id {
			return true
		}
	}
	return false
}

// Add inserts id if absent and reports whether the set changed.
func (s *ActorSet) Add(id string) bool {
	if s.Contains(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// Remove deletes id if present and reports whether the set changed.
func (s *ActorSet) Remove(id string) bool {
	for i, member := range *s {
		if member == id {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle flips membership and returns true if id is now a member.
func (s *ActorSet) Toggle(id string) bool {
	if s.Remove(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

func (s ActorSet) Count() int {
	return len(s)
}
