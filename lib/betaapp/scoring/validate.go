package scoring

import (
	"fmt"

	"beta-program-backend/lib/betaapp/appconfig"
)

// ValidateStage checks the current stage's answers only. Errors are data,
// not failures: they are keyed by question id for the caller to display and
// are cleared again when the applicant edits the field.
func ValidateStage(stage appconfig.Stage, answers AnswerMap) (bool, map[string]string) {
	stageErrors := map[string]string{}
	valid := true

	for _, question := range stage.Questions {
		answer := answers[question.ID]
		if question.Required {
			if answer.IsEmpty(question.Type) {
				stageErrors[question.ID] = "This field is required."
				valid = false
			} else if question.Type == appconfig.QuestionTextarea {
				wordCount := CountWords(answer.Text)
				if question.MinWords > 0 && wordCount < question.MinWords {
					stageErrors[question.ID] = fmt.Sprintf("Minimum %d words required.", question.MinWords)
					valid = false
				}
				if question.MaxWords > 0 && wordCount > question.MaxWords {
					stageErrors[question.ID] = fmt.Sprintf("Maximum %d words allowed.", question.MaxWords)
					valid = false
				}
			}
		}
		if question.Type == appconfig.QuestionCheckboxMultiple &&
			question.MaxSelections > 0 &&
			len(answer.List) > question.MaxSelections {
			stageErrors[question.ID] = fmt.Sprintf("You can select a maximum of %d options.", question.MaxSelections)
			valid = false
		}
	}
	return valid, stageErrors
}
