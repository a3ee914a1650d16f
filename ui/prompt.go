package ui

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

type QuestionKind int

const (
	Input QuestionKind = iota
	Confirm
	Select
)

type Choice struct {
	Label string
	Value string
}

// Question is one step of an interactive form. When, Default and Filter see
// the answers collected so far.
type Question struct {
	Name     string
	Kind     QuestionKind
	Message  string
	Choices  []Choice
	When     func(Answers) bool
	Default  func(Answers) string
	Validate func(string) error
	Filter   func(string) string
}

type Answers map[string]string

func (a Answers) String(name string) string {
	return a[name]
}

func (a Answers) Bool(name string) bool {
	return a[name] == "true"
}

// Fields splits a space separated answer.
func (a Answers) Fields(name string) []string {
	return strings.Fields(a[name])
}

// Asker collects a raw answer for a single question. Reject is called with
// the validation failure before the same question is asked again.
type Asker interface {
	Ask(q *Question, def string) (string, error)
	Reject(q *Question, err error)
}

// Ask walks the questions in order, skipping those whose When predicate is
// false, re-asking until Validate passes.
func Ask(asker Asker, questions []Question) (Answers, error) {
	answers := Answers{}
	for i := range questions {
		q := &questions[i]
		if q.When != nil && !q.When(answers) {
			continue
		}

		def := ""
		if q.Default != nil {
			def = q.Default(answers)
		}

		for {
			raw, err := asker.Ask(q, def)
			if err != nil {
				return nil, err
			}
			if raw == "" {
				raw = def
			}
			if q.Validate != nil {
				if err := q.Validate(raw); err != nil {
					asker.Reject(q, err)
					continue
				}
			}
			if q.Filter != nil {
				raw = q.Filter(raw)
			}
			answers[q.Name] = raw
			break
		}
	}
	return answers, nil
}

// TerminalAsker answers questions with promptui.
type TerminalAsker struct{}

func (TerminalAsker) Ask(q *Question, def string) (string, error) {
	switch q.Kind {
	case Confirm:
		return promptConfirm(q.Message, def == "true")
	case Select:
		return promptSelect(q, def)
	default:
		prompt := promptui.Prompt{
			Label:   q.Message,
			Default: def,
		}
		res, err := prompt.Run()
		if err != nil {
			return "", err
		}
		if res == "" {
			res = def
		}
		return res, nil
	}
}

func (TerminalAsker) Reject(q *Question, err error) {
	fmt.Println(RedText(">> " + err.Error()))
}

func promptConfirm(label string, def bool) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if def {
		prompt.Default = "y"
	}
	_, err := prompt.Run()
	if err == promptui.ErrAbort {
		return "false", nil
	}
	if err != nil {
		return "", err
	}
	return "true", nil
}

func promptSelect(q *Question, def string) (string, error) {
	labels := make([]string, len(q.Choices))
	cursor := 0
	for i, c := range q.Choices {
		labels[i] = c.Label
		if c.Value == def {
			cursor = i
		}
	}
	prompt := promptui.Select{
		Label:     q.Message,
		Items:     labels,
		CursorPos: cursor,
		Templates: &promptui.SelectTemplates{
			Active:   `{{ . | underline }}`,
			Inactive: `{{ . }}`,
			Selected: fmt.Sprintf("%s %s {{ . | cyan | bold }} ", GreenText("✔"), q.Message),
		},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return q.Choices[i].Value, nil
}

// PromptConfirm asks a yes/no question defaulting to no.
func PromptConfirm(label string) (bool, error) {
	res, err := promptConfirm(label, false)
	return res == "true", err
}
