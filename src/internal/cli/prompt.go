package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// surveyPrompter implements deploy.Prompter on top of terminal prompts.
type surveyPrompter struct{}

func newSurveyPrompter() *surveyPrompter {
	return &surveyPrompter{}
}

// Select presents the options and returns the chosen index.
func (p *surveyPrompter) Select(message string, options []string) (int, error) {
	var selection string

	prompt := &survey.Select{
		Message: message,
		Options: options,
	}

	if err := survey.AskOne(prompt, &selection, survey.WithValidator(survey.Required)); err != nil {
		return 0, err
	}

	for i, option := range options {
		if option == selection {
			return i, nil
		}
	}

	return 0, fmt.Errorf("selection %q not in option list", selection)
}

// Confirm asks a yes/no question. The default is the answer for a bare enter,
// so callers pass false wherever a stray keystroke must not trigger a
// mutation.
func (p *surveyPrompter) Confirm(message string, def bool) (bool, error) {
	answer := def

	prompt := &survey.Confirm{
		Message: message,
		Default: def,
	}

	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}

	return answer, nil
}
