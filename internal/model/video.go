package model

// VideoSample carries the text of one video. Samples are only ever used as
// aggregate text for content-similarity analysis, never scored individually.
type VideoSample struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PopularVideo is one entry from a channel's most-viewed list.
type PopularVideo struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	ViewCount int64  `json:"viewCount"`
}

// CombineSampleText concatenates titles and descriptions of all samples into
// a single blob for the text-similarity signal.
func CombineSampleText(videos []VideoSample) string {
	var b []byte
	for i, v := range videos {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, v.Title...)
		b = append(b, ' ')
		b = append(b, v.Description...)
	}
	return string(b)
}
