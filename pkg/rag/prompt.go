package rag

import (
	"fmt"
	"strings"
)

// Prompt builders for the extraction and chat flows. All prompts instruct
// the model to answer from the supplied passage only, so a hallucinated
// answer without document grounding is less likely.

func FloatPrompt(question, passage string) string {
	return fmt.Sprintf(`Based only on the following document excerpt, answer the question.

Document excerpt:
%s

Question: %s

Answer with the number only. No units, no explanation. If the excerpt does not contain the answer, reply "unknown".`, passage, question)
}

func TextPrompt(question, passage string) string {
	return fmt.Sprintf(`Based only on the following document excerpt, answer the question.

Document excerpt:
%s

Question: %s

Answer concisely with the relevant facts only, no preamble. If the excerpt does not contain the answer, reply "unknown".`, passage, question)
}

func ListPrompt(question string, options []string, passage string) string {
	return fmt.Sprintf(`Based only on the following document excerpt, answer the question.

Document excerpt:
%s

Question: %s

Reply with a JSON array containing only options from this exact list: [%s]. Reply [] if none apply.`, passage, question, quoteJoin(options))
}

func CompanyNamePrompt(passage string) string {
	return fmt.Sprintf(`The following is an excerpt from a corporate document:

%s

What is the name of the company this document is about? Respond with the company name only, nothing else. If you cannot tell, reply "unknown".`, passage)
}

// ChatPrompt builds the grounded conversational prompt. The assistant's
// goal is to help the user complete the ESG questionnaire, so the current
// answers snapshot and retrieved document context are both injected.
func ChatPrompt(companyName, answersJSON, context, userMessage string) string {
	if context == "" {
		context = "(no relevant document passages found)"
	}
	return fmt.Sprintf(`You are an ESG reporting assistant helping the user complete an environmental questionnaire for %s.

Current questionnaire answers (JSON):
%s

Relevant document passages:
%s

Your goal is to help the user fill in or correct the questionnaire. Answer the user's message using the passages and current answers above. When the user states a KPI value, acknowledge it explicitly.

User message: %s`, companyName, answersJSON, context, userMessage)
}

// UpdateExtractionPrompt asks for questionnaire updates implied by a chat
// message as flat JSON. Bilingual because source documents and users mix
// English and Chinese KPI wording.
func UpdateExtractionPrompt(userMessage string) string {
	return fmt.Sprintf(`A user is filling in an ESG questionnaire and wrote the following message (it may be in English or Chinese / 消息可能是英文或中文):

%s

If the message states or corrects any of these numeric KPIs, output them as a flat JSON object, otherwise output {}.
Keys: scope1, scope2, scope3 (tCO2e), energy_total (kWh), renewable_ratio (%%), hazardous_waste, nonhazardous_waste, recycled_waste (kg).
Synonyms like "scope one" / "范围一" mean scope1, and so on.
Values must be plain numbers. Output JSON only, no explanation.`, userMessage)
}

func ModuleDetectPrompt(context string) string {
	return fmt.Sprintf(`The following passages describe a company's operations:

%s

List the distinct business modules or units mentioned (e.g. production, logistics, offices). Reply with a JSON array of short module names only.`, context)
}

func ModuleDetailPrompt(module, question, context string) string {
	return fmt.Sprintf(`The following passages describe a company's operations:

%s

For the business module "%s": %s
Reply with a JSON object mapping short aspect names to findings, or a short plain-text answer if no structure fits.`, context, module, question)
}

func ModuleSummaryPrompt(question, detailsJSON string) string {
	return fmt.Sprintf(`Per-module findings for the question "%s":

%s

Summarize these findings in one sentence.`, question, detailsJSON)
}

// VisionKPIPrompt is the fixed instruction sent with a rendered page image.
func VisionKPIPrompt(question string) string {
	return fmt.Sprintf(`This image is a full page from a corporate ESG report. %s
Read the page, including any tables and charts. Answer with the number only. If the page does not contain the answer, reply "unknown".`, question)
}

func quoteJoin(options []string) string {
	quoted := make([]string, len(options))
	for i, o := range options {
		quoted[i] = `"` + o + `"`
	}
	return strings.Join(quoted, ", ")
}
