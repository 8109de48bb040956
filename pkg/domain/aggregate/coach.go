package aggregate

import (
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/trend"
)

// CoachFeedback counts annotations on the athlete's videos for the period,
// separating coach/scout feedback from the athlete's own notes.
func CoachFeedback(p Params, annotations []report.Annotation) report.CoachFeedbackSection {
	var videos trend.Counts
	coaches := make(map[string]struct{})
	s := report.CoachFeedbackSection{}

	for _, a := range annotations {
		if !p.Period.Contains(a.CreatedAt) {
			continue
		}
		if a.ScoutID == "" || a.ScoutID == p.UserID {
			s.SelfAnnotations++
			continue
		}
		s.CoachAnnotations++
		coaches[a.ScoutID] = struct{}{}
		videos.Add(a.VideoID)
	}

	s.UniqueCoaches = len(coaches)
	s.ByVideo = videos.Ordered()
	return s
}
