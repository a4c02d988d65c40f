package scoring

import (
	"beta-program-backend/lib/betaapp/appconfig"
	"beta-program-backend/models"
)

// Classify maps the accumulated total score onto the overall thresholds,
// evaluated in descending priority.
func Classify(totalScore int, thresholds appconfig.Thresholds) models.Classification {
	switch {
	case totalScore >= thresholds.AutoAccept:
		return models.ClassificationAutoAccept
	case totalScore >= thresholds.StrongCandidate:
		return models.ClassificationStrongCandidate
	case totalScore >= thresholds.InterviewRequired:
		return models.ClassificationInterviewRequired
	default:
		return models.ClassificationAutoReject
	}
}
