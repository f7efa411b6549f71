package generator

import "socialpost/internal/types"

// MaterializePosts turns drafts into posts ready for Store.AppendPosts. All posts
// of a batch share one timestamp and keep the draft order.
func (s *Service) MaterializePosts(drafts []Draft, req PostsRequest) []types.Post {
	now := s.now().UTC()
	posts := make([]types.Post, 0, len(drafts))
	for _, d := range drafts {
		posts = append(posts, types.Post{
			ID:                s.newID(),
			Text:              d.Text,
			TovPhrase:         d.TovPhrase,
			DateGenerated:     now,
			Platform:          req.Platform,
			ContentType:       req.ContentType,
			Topic:             req.Topic,
			Hashtags:          []string{},
			VisualInspiration: d.VisualInspiration,
		})
	}
	return posts
}

// MaterializeCampaign turns campaign drafts into posts tagged with their day and
// theme. Campaign posts are always social posts.
func (s *Service) MaterializeCampaign(drafts []CampaignDraft, req CampaignRequest) []types.Post {
	now := s.now().UTC()
	posts := make([]types.Post, 0, len(drafts))
	for _, d := range drafts {
		posts = append(posts, types.Post{
			ID:                s.newID(),
			Text:              d.Text,
			TovPhrase:         d.TovPhrase,
			DateGenerated:     now,
			Platform:          req.Platform,
			ContentType:       types.ContentSocialPost,
			Topic:             req.Topic,
			Hashtags:          []string{},
			VisualInspiration: d.VisualInspiration,
			CampaignTheme:     d.Theme,
			DayInCampaign:     d.Day,
		})
	}
	return posts
}
