package gpthandler

import (
	"fmt"
	"strings"

	"beta-program-backend/config"
	yagptclient "beta-program-backend/lib/gpt/yagpt-client"
	dbmodels "beta-program-backend/models/db"

	log "github.com/sirupsen/logrus"
)

const reviewPromt = "You are an editorial assistant for a serialized fiction publisher. " +
	"You are given free-text answers from a beta reader application. " +
	"Write a short note (3-5 sentences) for the program admins on the quality of the feedback: " +
	"specificity, genre awareness and constructiveness. Do not assign a score."

type Provider interface {
	Enabled() bool
	ReviewFreeText(rec dbmodels.BetaApplication) (review string, err error)
}

type impl struct{}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

func (i impl) Enabled() bool {
	return config.Conf.YandexGPT.Token != "" && config.Conf.YandexGPT.CatalogID != ""
}

// ReviewFreeText produces an advisory note on the textarea answers. It is
// for admins only and never feeds back into the score.
func (i impl) ReviewFreeText(rec dbmodels.BetaApplication) (review string, err error) {
	answers := rec.Answers.FreeTextAnswers()
	if len(answers) == 0 {
		return "", nil
	}
	sb := strings.Builder{}
	for _, answer := range answers {
		sb.WriteString(fmt.Sprintf("Question: %s\nAnswer: %s\n\n", answer.Question, answer.Text))
	}
	review, err = yagptclient.
		NewClient(config.Conf.YandexGPT.Token, config.Conf.YandexGPT.CatalogID).
		GenerateByPromtAndText(reviewPromt, sb.String())
	if err != nil {
		log.
			WithField("application_id", rec.ID).
			WithError(err).
			Error("failed to review application answers via YandexGPT")
		return "", err
	}
	return review, nil
}
