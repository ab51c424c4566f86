package service

import "playercare/internal/model"

// RouteFor combines the classifier's route with the sentiment flag into the
// final routing decision. Pure policy: sentiment.RequiresHuman overrides the
// classifier unconditionally; otherwise the classifier's route passes
// through unchanged.
func RouteFor(cls *model.IssueClassification, sent model.SentimentResult) model.RoutingDecision {
	if sent.RequiresHuman {
		return model.RoutingDecision{
			Route:          model.RouteHuman,
			AutoResolvable: false,
			Urgency:        cls.SuggestedUrgency,
		}
	}
	return model.RoutingDecision{
		Route:          cls.RouteDecision,
		AutoResolvable: cls.AutoResolvable,
		Urgency:        cls.SuggestedUrgency,
	}
}
