package post

import (
	"strings"

	"github.com/JuliaBars/yatube-back/internal/group"
)

// Forms keep validation rules next to the handlers that bind them. Validate
// returns a field → message map; an empty map means the input is acceptable.

type PostForm struct {
	Text    string `form:"text" json:"text"`
	GroupID string `form:"group" json:"group"`
}

func (f *PostForm) Validate() (map[string]string, error) {
	errs := make(map[string]string)

	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" {
		errs["text"] = "Text is required"
	}

	if f.GroupID != "" {
		ok, err := group.ExistsByID(f.GroupID)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs["group"] = "Unknown group"
		}
	}

	return errs, nil
}

type CommentForm struct {
	Text string `form:"text" json:"text"`
}

func (f *CommentForm) Validate() map[string]string {
	errs := make(map[string]string)

	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" {
		errs["text"] = "Text is required"
	}

	return errs
}
