package openai

import (
	"fmt"
	"strings"

	"github.com/careloop/visitprep/internal/domain/entities"
)

const gistSystemPrompt = `You translate clinical notes into plain language a patient can read.
Rules:
- Ground every statement in the provided input. Never invent findings.
- Write at a 6th to 8th grade reading level.
- Keep the tone warm and factual. Do not alarm the reader.
- Respond with JSON only, no prose, using this schema:
{"cause": "what is happening and why", "location": "where in the body", "goal": "what the care plan aims to achieve"}`

const anomalySystemPrompt = `You review wearable health metrics for a patient preparing for a doctor visit.
Rules:
- Flag only clear physiological outliers present in the data.
- Describe each finding in calm, plain language. Never diagnose.
- Mark high_priority true only for findings a doctor should see first.
- Respond with JSON only, using this schema:
{"anomalies": [{"title": "...", "description": "...", "timestamp": "RFC3339", "high_priority": false}]}`

const questionSystemPrompt = `You prepare consultation questions a patient can ask their doctor.
Rules:
- Produce 3 to 5 questions for each category: understanding, treatment, lifestyle.
- Ground every question in the provided medical input, health data and symptoms.
- Write at a 6th to 8th grade reading level. Keep the tone warm, not alarming.
- When the data hints at something the main concern could overshadow, add one
  question with is_secondary_oversight true.
- Respond with JSON only, using this schema:
{"questions": [{"category": "understanding|treatment|lifestyle", "question": "...", "is_secondary_oversight": false}]}`

const recapSystemPrompt = `You summarize a recorded doctor visit for the patient afterwards.
Rules:
- Use only what was said in the transcript. Never add advice of your own.
- Write at a 6th to 8th grade reading level, warm and factual.
- Action items are things the patient must do. Follow-ups are future appointments or checks.
- Respond with JSON only, using this schema:
{"summary": "...", "action_items": ["..."], "follow_ups": ["..."]}`

func buildGistUserPrompt(clinicalInput string) string {
	return fmt.Sprintf("Clinical input:\n%s", clinicalInput)
}

func buildAnomalyUserPrompt(metrics []entities.HealthMetric) string {
	var sb strings.Builder
	sb.WriteString("Synced health metrics:\n")
	for _, m := range metrics {
		fmt.Fprintf(&sb, "- %s: %.2f %s at %s\n", m.Type, m.Value, m.Unit, m.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	}
	return sb.String()
}

func buildQuestionUserPrompt(input entities.QuestionInput) string {
	var sb strings.Builder
	sb.WriteString("Medical input:\n")
	sb.WriteString(input.MedicalInput)
	sb.WriteString("\n\nReported symptoms:\n")
	sb.WriteString(input.Symptoms)
	if len(input.HealthData) > 0 {
		sb.WriteString("\n\nHealth data:\n")
		for _, m := range input.HealthData {
			fmt.Fprintf(&sb, "- %s: %.2f %s\n", m.Type, m.Value, m.Unit)
		}
	}
	return sb.String()
}

func buildRecapUserPrompt(transcript string) string {
	return fmt.Sprintf("Visit transcript:\n%s", transcript)
}
