package forumController

import (
	"sort"

	"eduplatform/models/forum"
)

type ReplyNode struct {
	forum.Reply
	AuthorName       string       `json:"author_name"`
	AuthorAvatar     string       `json:"author_avatar"`
	AuthorRole       string       `json:"author_role"`
	ParentAuthorName string       `json:"parent_author_name,omitempty"`
	ContentHTML      string       `json:"content_html"`
	Liked            bool         `json:"liked"`
	Children         []*ReplyNode `json:"children"`
}

// BuildReplyTree links replies to their parents. replies must be in creation order; children keep
// that order, and roots are ordered solution first. A reply whose parent is missing becomes a root.
func BuildReplyTree(replies []*ReplyNode) []*ReplyNode {
	byID := make(map[uint]*ReplyNode, len(replies))
	for _, r := range replies {
		r.Children = []*ReplyNode{}
		byID[r.ID] = r
	}

	roots := []*ReplyNode{}
	for _, r := range replies {
		if r.ParentReplyID != nil {
			if parent, ok := byID[*r.ParentReplyID]; ok && parent != r {
				parent.Children = append(parent.Children, r)
				continue
			}
		}
		roots = append(roots, r)
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].IsSolution && !roots[j].IsSolution
	})
	return roots
}
