package store

import (
	"time"

	"itemedit/internal/model"
)

// SampleItem is the item inserted by `itemedit items seed`.
func SampleItem(now time.Time) model.Item {
	now = now.UTC()
	return model.Item{
		ID:          "item-1",
		Title:       "Complete project documentation",
		Description: "Write comprehensive documentation for the new item editor including usage examples and API reference.",
		AssignedTo:  "John Doe",
		Priority:    model.PriorityHigh,
		DueDate:     "2024-08-01",
		Tags:        []string{"documentation", "urgent"},
		Comments: []model.Comment{
			{
				ID:        "comment-1",
				Author:    "Sarah Wilson",
				Content:   "This looks great! I think we should also include some video tutorials.",
				Timestamp: now.Add(-2 * time.Hour),
			},
			{
				ID:        "comment-2",
				Author:    "Mike Johnson",
				Content:   "Agreed! Also, let's make sure to cover the comment functionality in detail.",
				Timestamp: now.Add(-1 * time.Hour),
			},
		},
	}
}
