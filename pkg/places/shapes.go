package places

import "time"

// placeV1 is the Places API (New) response for the reviews field mask.
type placeV1 struct {
	Reviews []struct {
		AuthorAttribution struct {
			DisplayName string `json:"displayName"`
		} `json:"authorAttribution"`
		Text struct {
			Text string `json:"text"`
		} `json:"text"`
		PublishTime                    string `json:"publishTime"`
		RelativePublishTimeDescription string `json:"relativePublishTimeDescription"`
		Rating                         int    `json:"rating"`
	} `json:"reviews"`
}

func (p placeV1) normalize() []Review {
	out := make([]Review, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		out = append(out, newReview(
			r.AuthorAttribution.DisplayName,
			r.Text.Text,
			r.Rating,
			rfc3339(r.PublishTime),
			nonEmpty(r.RelativePublishTimeDescription),
		))
	}
	return out
}

// placeLegacy is the Place Details response.
type placeLegacy struct {
	Result *struct {
		Reviews []struct {
			AuthorName              string `json:"author_name"`
			Text                    string `json:"text"`
			RelativeTimeDescription string `json:"relative_time_description"`
			Time                    int64  `json:"time"`
			Rating                  int    `json:"rating"`
		} `json:"reviews"`
	} `json:"result"`
	Status string `json:"status"`
}

func (p placeLegacy) normalize() []Review {
	out := make([]Review, 0, len(p.Result.Reviews))
	for _, r := range p.Result.Reviews {
		var ts *string
		if r.Time > 0 {
			s := time.Unix(r.Time, 0).UTC().Format(time.RFC3339)
			ts = &s
		}
		out = append(out, newReview(r.AuthorName, r.Text, r.Rating, ts, nonEmpty(r.RelativeTimeDescription)))
	}
	return out
}

// rfc3339 reformats a publish time without fractional seconds. Unparseable
// values are passed through unchanged.
func rfc3339(s string) *string {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return &s
	}
	out := t.UTC().Format(time.RFC3339)
	return &out
}
