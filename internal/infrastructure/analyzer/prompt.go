package analyzer

import (
	"strings"
	"text/template"

	"github.com/iotguard/iotguard/internal/ports"
)

// promptTemplate instructs the model to answer in the exact labeled-line
// grammar the parser understands. Changing a label here breaks parsing of
// every cached reply.
const promptTemplate = `You are an IoT security expert. Analyze this IoT command:
Command: "{{.Command}}"
User ID: "{{.UserID}}"
Device: "{{.Device}}"

Respond in this format:
- Risk Level: [None/Low/Medium/High/Critical]
- Explanation: [1-2 sentences]
- Suggestion: [1-2 sentences]
- Safe Command Variation 1: [Safe version]
- Safe Command Variation 2: [Another safe version]
`

var prompt = template.Must(template.New("analysis").Parse(promptTemplate))

// BuildPrompt renders the analysis prompt for one request. An untargeted
// command carries the device as "None".
func BuildPrompt(req ports.AnalysisRequest) (string, error) {
	device := req.Device
	if device == "" {
		device = "None"
	}
	var sb strings.Builder
	err := prompt.Execute(&sb, struct {
		Command string
		UserID  string
		Device  string
	}{Command: req.Command, UserID: req.UserID, Device: device})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
