package model

import "strings"

// Field names a required item field that can carry a validation error.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldAssignedTo  Field = "assignedTo"
)

// RequiredFields is the validation order.
var RequiredFields = []Field{FieldTitle, FieldDescription, FieldAssignedTo}

// FieldErrors maps a field to its message. A nil or empty map means the item is valid.
type FieldErrors map[Field]string

func (e FieldErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

func (e FieldErrors) Empty() bool { return len(e) == 0 }

func (e FieldErrors) Clear(f Field) { delete(e, f) }

var requiredMessages = map[Field]string{
	FieldTitle:       "Title is required",
	FieldDescription: "Description is required",
	FieldAssignedTo:  "Assigned to is required",
}

// FieldValue returns the item's value for a required field.
func (it Item) FieldValue(f Field) string {
	switch f {
	case FieldTitle:
		return it.Title
	case FieldDescription:
		return it.Description
	case FieldAssignedTo:
		return it.AssignedTo
	}
	return ""
}

// Validate reports every blank required field at once.
func Validate(it Item) FieldErrors {
	errs := FieldErrors{}
	for _, f := range RequiredFields {
		if strings.TrimSpace(it.FieldValue(f)) == "" {
			errs[f] = requiredMessages[f]
		}
	}
	return errs
}
