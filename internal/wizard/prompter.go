package wizard

import "github.com/AlecAivazis/survey/v2"

// Prompter asks the user for free-form answers and yes/no confirmations.
type Prompter interface {
	Ask(message string, defaultValue string, required bool) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter with interactive terminal prompts.
type SurveyPrompter struct {
	options []survey.AskOpt
}

// NewSurveyPrompter constructs a prompter bound to the process terminal.
func NewSurveyPrompter(options ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{options: options}
}

// Ask prompts for a single line, returning defaultValue when the answer is empty.
func (prompter *SurveyPrompter) Ask(message string, defaultValue string, required bool) (string, error) {
	prompt := &survey.Input{Message: message, Default: defaultValue}
	options := append([]survey.AskOpt{}, prompter.options...)
	if required {
		options = append(options, survey.WithValidator(survey.Required))
	}

	var answer string
	if askError := survey.AskOne(prompt, &answer, options...); askError != nil {
		return "", askError
	}
	return answer, nil
}

// Confirm prompts for a yes/no answer.
func (prompter *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	prompt := &survey.Confirm{Message: message, Default: defaultValue}

	var answer bool
	if askError := survey.AskOne(prompt, &answer, prompter.options...); askError != nil {
		return false, askError
	}
	return answer, nil
}
