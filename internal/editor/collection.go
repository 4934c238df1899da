package editor

import (
	"fmt"
	"strings"
)

// CollectionEditor mutates the tag-like array fields of a draft. Adds are
// trimmed, and empty or already-present values are silently ignored;
// uniqueness is exact string match, case-sensitive. Removal preserves
// insertion order of the remaining elements.
type CollectionEditor struct {
	draft    *Draft
	onChange func(field string)
}

// NewCollectionEditor binds an editor to a draft. onChange, when non-nil,
// fires after every mutation with the affected field name.
func NewCollectionEditor(d *Draft, onChange func(field string)) *CollectionEditor {
	return &CollectionEditor{draft: d, onChange: onChange}
}

// Add appends the trimmed value to the named collection. Empty and
// duplicate values are dropped without error.
func (c *CollectionEditor) Add(field, raw string) error {
	tags, ok := c.draft.tags(field)
	if !ok {
		return fmt.Errorf("op=collection.add field=%s: %w", field, ErrUnknownField)
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	for _, existing := range *tags {
		if existing == value {
			return nil
		}
	}
	*tags = append(*tags, value)
	c.changed(field)
	return nil
}

// Remove deletes the element at index, shifting later elements down.
// An out-of-range index is a no-op.
func (c *CollectionEditor) Remove(field string, index int) error {
	tags, ok := c.draft.tags(field)
	if !ok {
		return fmt.Errorf("op=collection.remove field=%s: %w", field, ErrUnknownField)
	}
	if index < 0 || index >= len(*tags) {
		return nil
	}
	*tags = append((*tags)[:index], (*tags)[index+1:]...)
	c.changed(field)
	return nil
}

func (c *CollectionEditor) changed(field string) {
	if c.onChange != nil {
		c.onChange(field)
	}
}
