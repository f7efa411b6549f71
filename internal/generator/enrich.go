package generator

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"socialpost/internal/logging"
	"socialpost/internal/types"
)

// PostStore is the part of the brand store enrichment needs.
type PostStore interface {
	Brand(id string) (types.Brand, bool)
	UpdatePost(brandID, postID string, u types.PostUpdate) bool
}

// EnrichHashtags generates hashtags for every post of a brand that has none and
// writes them back through st. At most limit requests run at once. The first
// failure cancels the remaining requests and is returned; posts already updated
// keep their hashtags. It returns the number of posts updated.
func (s *Service) EnrichHashtags(ctx context.Context, st PostStore, brandID string, limit int) (int, error) {
	brand, ok := st.Brand(brandID)
	if !ok {
		return 0, fmt.Errorf("brand %s not found", brandID)
	}
	if limit < 1 {
		limit = 1
	}

	pending := make([]types.Post, 0, len(brand.Posts))
	for _, p := range brand.Posts {
		if len(p.Hashtags) == 0 {
			pending = append(pending, p)
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	timer := logging.StartTimer(logging.CategoryGenerator, "EnrichHashtags")
	defer timer.Stop()
	logging.Generator("enriching %d posts of brand %s (limit %d)", len(pending), brandID, limit)

	var updated atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, p := range pending {
		g.Go(func() error {
			tags, err := s.GenerateHashtags(gctx, p.Text, brand.Dialect)
			if err != nil {
				return err
			}
			if st.UpdatePost(brandID, p.ID, types.PostUpdate{Hashtags: tags, SetHashtags: true}) {
				updated.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	return int(updated.Load()), err
}
