package models

type Classification string

const (
	ClassificationAutoAccept        Classification = "auto_accept"
	ClassificationStrongCandidate   Classification = "strong_candidate"
	ClassificationInterviewRequired Classification = "interview_required"
	ClassificationAutoReject        Classification = "auto_reject"
)

var classificationMessage = map[Classification]string{
	ClassificationAutoAccept:        "Congratulations! You have been automatically accepted into our beta reader program.",
	ClassificationStrongCandidate:   "Excellent! You are a strong candidate. We will contact you within 48 hours.",
	ClassificationInterviewRequired: "Thank you for applying. We would like to schedule a brief interview with you.",
	ClassificationAutoReject:        "Thank you for your interest. Unfortunately, you do not meet our current requirements.",
}

// DisqualifiedMessage is shown when a stage gate terminates the application early.
const DisqualifiedMessage = "Unfortunately, you do not meet the minimum requirements for this stage. We encourage you to gain more reading experience and apply again in the future."

func (c Classification) Message() string {
	if msg, exist := classificationMessage[c]; exist {
		return msg
	}
	return string(c)
}

func (c Classification) IsValid() bool {
	_, exist := classificationMessage[c]
	return exist
}

type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

func (d Decision) IsValid() bool {
	return d == DecisionAccepted || d == DecisionRejected
}
