package response

import "github.com/curata-io/curata/domain"

type TagScore struct {
	Tag   string `json:"tag"`
	Score int64  `json:"score"`
}

func NewTagScoreFromDomain(t domain.TagScore) TagScore {
	return TagScore{
		Tag:   t.Tag,
		Score: t.Score,
	}
}

type ContentScore struct {
	ContentID int64   `json:"content_id"`
	Score     float64 `json:"score"`
}

func NewContentScoreFromDomain(c domain.ContentScore) ContentScore {
	return ContentScore{
		ContentID: c.ContentID,
		Score:     c.Score,
	}
}
