// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"text/template"
)

// systemPrompt is the fixed instruction describing the extraction task.
// The model is steered toward tabular data only; prose discussion of
// properties is intentionally excluded.
const systemPrompt = `You are an expert materials scientist tasked with extracting mechanical property data from academic papers.
Focus on finding tabular data that reports mechanical properties such as:
- Tensile strength (UTS, YS)
- Hardness (HV, HB, etc.)
- Elongation
- Young's modulus
- Yield strength
- Other mechanical properties

Extract ONLY data that appears in tables, not from the text discussion.
For each property found, provide:
1. Material/alloy composition
2. Processing condition or treatment (if mentioned)
3. Property name
4. Numerical value
5. Unit of measurement
6. Test temperature (if mentioned)
7. Any other relevant parameters

Return the data as a JSON array of objects.`

// userPromptTmpl embeds the paper title and the truncated text.
var userPromptTmpl = template.Must(template.New("user").Parse(`Paper Title: {{.Title}}

Please extract all mechanical property data from the tables in this paper. Focus on finding structured tabular data.

Paper text:
{{.Text}}

Return the extracted data as a JSON array. Each object should have these fields:
- material: string (material or alloy composition)
- condition: string or null (processing condition)
- property_name: string
- value: number
- unit: string
- temperature: number or null
- temperature_unit: string or null
- strain_rate: number or null
- additional_info: object (any other parameters)
`))

// renderUserPrompt executes the user prompt template.
func renderUserPrompt(title, text string) (string, error) {
	if title == "" {
		title = "Unknown"
	}
	var buf bytes.Buffer
	err := userPromptTmpl.Execute(&buf, struct{ Title, Text string }{Title: title, Text: text})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
