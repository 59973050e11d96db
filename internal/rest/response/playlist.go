package response

import "github.com/curata-io/curata/domain"

type PlaylistSummary struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Views int64   `json:"views"`
	Likes int64   `json:"likes"`
	Score float64 `json:"score"`
}

func NewPlaylistSummaryFromDomain(p *domain.PlaylistSummary) PlaylistSummary {
	return PlaylistSummary{
		ID:    p.ID,
		Title: p.Title,
		Views: p.Views,
		Likes: p.Likes,
		Score: p.Score,
	}
}
