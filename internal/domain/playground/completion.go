package playground

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/janhq/playground-api/internal/domain/model"
)

const (
	excerptLength = 200

	// creativeTemperature marks the temperature line as Creative.
	creativeTemperature = 1.0
	// creativeModeTemperature switches the closing annotation to Creative Mode.
	creativeModeTemperature = 1.2
)

const completionText = `This is a simulated response from **{{.ModelName}}**.

**Your prompt:**
{{.Excerpt}}

**Model Configuration:**
• Temperature: {{num .Config.Temperature}} {{if gt .Config.Temperature .CreativeTemperature}}(Creative){{else}}(Focused){{end}}
• Max Tokens: {{.Config.MaxTokens}}
• Top P: {{num .Config.TopP}}
• Frequency Penalty: {{num .Config.FrequencyPenalty}}
{{- with .SystemMessage}}
• System Message: {{.}}
{{- end}}

**Analysis:**
Based on your prompt, I would help you with:
1. Understanding the context and requirements
2. Providing relevant information and insights
3. Offering practical solutions or suggestions
4. Explaining concepts in clear, accessible language

{{if .CreativeMode}}🎨 **Creative Mode:** I'm generating more diverse and imaginative responses!{{else}}🎯 **Focused Mode:** I'm providing precise and deterministic responses.{{end}}

*Note: This is a mock response. In production, this would be replaced with actual AI model calls.*`

var completionTemplate = template.Must(template.New("completion").Funcs(template.FuncMap{
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}).Parse(completionText))

type completionData struct {
	ModelName           string
	Excerpt             string
	Config              model.Config
	SystemMessage       string
	CreativeTemperature float64
	CreativeMode        bool
}

// renderCompletion builds the mock assistant reply. The output depends only
// on its arguments.
func renderCompletion(m model.Model, prompt string, cfg model.Config) (string, error) {
	data := completionData{
		ModelName:           m.Name,
		Excerpt:             excerpt(prompt, excerptLength),
		Config:              cfg,
		CreativeTemperature: creativeTemperature,
		CreativeMode:        cfg.Temperature > creativeModeTemperature,
	}
	if cfg.SystemMessage != nil {
		data.SystemMessage = strings.TrimSpace(*cfg.SystemMessage)
	}

	var sb strings.Builder
	if err := completionTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// excerpt keeps the first n characters of s and appends "..." when it cut
// anything off.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
