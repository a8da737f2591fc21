package ai

import (
	"fmt"
	"strings"
)

const dualAudioEmailPrompt = `TASK: Generate a professional email from two audio inputs - one with relationship context, one with content details.

LANGUAGE SELECTION:
- Hindi/Hinglish mentioned -> Use Hinglish (natural Hindi-English mix)
- Other language specified -> Use that language
- No preference/English -> Use English

OUTPUT FORMAT:

ANALYSIS (in English):
Recipient: [name, title]
Relationship: [type]
Details: [key recipient info]
Purpose: [main objective]
Tone: [formality level]
Action Needed: [specific request]

EMAIL (in selected language):

Subject: [clear, specific subject]

[Appropriate greeting]

[Context paragraph if needed]

[Main message - organized logically]

[Closing with clear call-to-action]

[Professional sign-off]

REQUIREMENTS:
- Match tone to relationship (formal/business vs casual/personal)
- Include all key content from audio
- Natural language flow
- Clear next steps
- Cultural appropriateness
- Highlight urgent/time-sensitive items
- Do not use asterisks (*), separators (***), or markdown formatting
- Use simple text formatting only

Analyze both audios and generate the email.`

// buildPrompt appends the recipient context the caller already knows, so the
// model does not have to recover it from audio alone.
func buildPrompt(rcpt Recipient) string {
	var b strings.Builder
	b.WriteString(dualAudioEmailPrompt)

	var ctxLines []string
	if rcpt.Name != "" {
		ctxLines = append(ctxLines, fmt.Sprintf("Recipient name: %s", rcpt.Name))
	}
	if rcpt.Email != "" {
		ctxLines = append(ctxLines, fmt.Sprintf("Recipient email: %s", rcpt.Email))
	}
	if rcpt.Relationship != "" {
		ctxLines = append(ctxLines, fmt.Sprintf("Relationship: %s", rcpt.Relationship))
	}
	if len(ctxLines) > 0 {
		b.WriteString("\n\nKNOWN RECIPIENT CONTEXT:\n")
		b.WriteString(strings.Join(ctxLines, "\n"))
	}
	return b.String()
}
