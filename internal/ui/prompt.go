package ui

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/manifoldco/promptui"
)

// SelectTemplates is the look shared by arrow-key menus.
var SelectTemplates = &promptui.SelectTemplates{
	Label:    "{{ . }}?",
	Active:   "▸ {{ . | cyan }}",
	Inactive: "  {{ . }}",
	Selected: "✓ {{ . | green }}",
}

// Select shows an arrow-key menu and returns the chosen index.
func Select(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		Templates: SelectTemplates,
		Size:      len(items),
	}
	index, _, err := prompt.Run()
	return index, err
}

// Confirm asks a y/N question. Any error, including Ctrl-C, counts as no.
func Confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

// Choose asks for one of options, preselecting def.
func Choose(message string, options []string, def string) (string, error) {
	restore := useSelectTemplateNoFilter()
	defer restore()

	selected := def
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: def,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}

// Input asks for a line of free text.
func Input(message, def string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: def,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

// Replaces the stock select template so typed characters are not echoed
// as a filter.
var selectTemplateNoFilter = `
{{- define "option"}}
    {{- if eq .SelectedIndex .CurrentIndex }}{{color .Config.Icons.SelectFocus.Format }}{{ .Config.Icons.SelectFocus.Text }} {{else}}{{color "default"}}  {{end}}
    {{- .CurrentOpt.Value}}{{ if ne ($.GetDescription .CurrentOpt) "" }} - {{color "cyan"}}{{ $.GetDescription .CurrentOpt }}{{end}}
    {{- color "reset"}}
{{end}}
{{- if .ShowHelp }}{{- color .Config.Icons.Help.Format }}{{ .Config.Icons.Help.Text }} {{ .Help }}{{color "reset"}}{{"\n"}}{{end}}
{{- color .Config.Icons.Question.Format }}{{ .Config.Icons.Question.Text }} {{color "reset"}}
{{- color "default+hb"}}{{ .Message }}{{color "reset"}}
{{- if .ShowAnswer}}{{color "cyan"}} {{.Answer}}{{color "reset"}}{{"\n"}}
{{- else}}
  {{- "  "}}{{- color "cyan"}}[Arrow keys: move, Enter: select]{{color "reset"}}
  {{- "\n"}}
  {{- range $ix, $option := .PageEntries}}
    {{- template "option" $.IterateOption $ix $option}}
  {{- end}}
{{- end}}`

// useSelectTemplateNoFilter swaps in selectTemplateNoFilter and returns
// the function that restores the original.
func useSelectTemplateNoFilter() func() {
	original := survey.SelectQuestionTemplate
	survey.SelectQuestionTemplate = selectTemplateNoFilter
	return func() {
		survey.SelectQuestionTemplate = original
	}
}
