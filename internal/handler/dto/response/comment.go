package response

import (
	"time"

	"rentshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	Created    time.Time `json:"created"`
}

func FromCommentView(view *queries.CommentView) *CommentResponse {
	var resp CommentResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
