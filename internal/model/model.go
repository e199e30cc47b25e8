package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the selectable priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority accepts low/medium/high (any case). Empty input is valid and means unset.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	default:
		return "", false
	}
}

type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Complete    bool      `json:"complete"`
	AssignedTo  string    `json:"assignedTo"`
	Priority    Priority  `json:"priority,omitempty"`
	DueDate     string    `json:"dueDate,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
}

type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Avatar    string    `json:"avatar,omitempty"`
}

// NewItemID derives an item id from the creation time.
func NewItemID(now time.Time) string {
	return "item-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// NewBlankItem returns the template used when the editor opens without an item.
func NewBlankItem(now time.Time) Item {
	return Item{
		ID:       NewItemID(now),
		Priority: PriorityMedium,
		Comments: []Comment{},
	}
}

func NewComment(author, content string, now time.Time) Comment {
	return Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		Timestamp: now.UTC(),
	}
}

// Clone returns a copy that shares no slices with it.
func (it Item) Clone() Item {
	out := it
	if it.Tags != nil {
		out.Tags = append([]string(nil), it.Tags...)
	}
	if it.Comments != nil {
		out.Comments = append(make([]Comment, 0, len(it.Comments)), it.Comments...)
	}
	return out
}

// ParseTags splits a comma-separated input. Segments are trimmed and empty ones dropped;
// order and duplicates are kept.
func ParseTags(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Initials builds the avatar badge for an author: first letter of each word, upper-cased,
// at most two letters.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		if n == 2 {
			break
		}
		r := []rune(word)[0]
		b.WriteString(strings.ToUpper(string(r)))
		n++
	}
	return b.String()
}
