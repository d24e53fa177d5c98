package generate

import (
	"fmt"
	"strings"
)

const defaultTone = "professional"

func normalizeTone(tone string) string {
	tone = strings.TrimSpace(strings.ToLower(tone))
	if tone == "" {
		return defaultTone
	}
	return tone
}

func coverLetterPrompt(company, role, jobDescription, tone, resumeText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s cover letter for the %s position at %s.\n", normalizeTone(tone), role, company)
	b.WriteString("Address it to the hiring manager, keep it under 400 words, and close with a call to action.\n")
	b.WriteString("Return only the letter body, no subject line and no commentary.\n")
	if jobDescription != "" {
		b.WriteString("\nJob description:\n")
		b.WriteString(jobDescription)
		b.WriteString("\n")
	}
	if resumeText != "" {
		b.WriteString("\nCandidate resume:\n")
		b.WriteString(resumeText)
		b.WriteString("\n")
	}
	return b.String()
}

func linkedInPrompt(recipientName, purpose, company, role, jobDescription, tone, resumeText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s LinkedIn message to %s", normalizeTone(tone), recipientName)
	if company != "" {
		fmt.Fprintf(&b, " at %s", company)
	}
	b.WriteString(".\n")
	if purpose != "" {
		fmt.Fprintf(&b, "Purpose of the outreach: %s.\n", purpose)
	}
	if role != "" {
		fmt.Fprintf(&b, "The sender is interested in the %s role.\n", role)
	}
	b.WriteString("Keep it under 300 characters, warm but direct. Return only the message text.\n")
	if jobDescription != "" {
		b.WriteString("\nJob description:\n")
		b.WriteString(jobDescription)
		b.WriteString("\n")
	}
	if resumeText != "" {
		b.WriteString("\nSender background:\n")
		b.WriteString(resumeText)
		b.WriteString("\n")
	}
	return b.String()
}

func emailPrompt(recipient, purpose, company, role, jobDescription, tone, resumeText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s outreach email to %s", normalizeTone(tone), recipient)
	if company != "" {
		fmt.Fprintf(&b, " at %s", company)
	}
	b.WriteString(".\n")
	if purpose != "" {
		fmt.Fprintf(&b, "Purpose: %s.\n", purpose)
	}
	if role != "" {
		fmt.Fprintf(&b, "The sender is pursuing the %s role.\n", role)
	}
	b.WriteString("Start the reply with a subject line in the form \"Subject: ...\" on its own line, then the body.\n")
	b.WriteString("Keep the body under 200 words. Return only the email, no commentary.\n")
	if jobDescription != "" {
		b.WriteString("\nJob description:\n")
		b.WriteString(jobDescription)
		b.WriteString("\n")
	}
	if resumeText != "" {
		b.WriteString("\nSender background:\n")
		b.WriteString(resumeText)
		b.WriteString("\n")
	}
	return b.String()
}

func followUpPrompt(recipient, company, role, previousContext, tone string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s follow-up email to %s", normalizeTone(tone), recipient)
	if company != "" {
		fmt.Fprintf(&b, " at %s", company)
	}
	b.WriteString(" about an earlier outreach that has not received a reply.\n")
	if role != "" {
		fmt.Fprintf(&b, "The sender is pursuing the %s role.\n", role)
	}
	if previousContext != "" {
		b.WriteString("\nThe original message said:\n")
		b.WriteString(previousContext)
		b.WriteString("\n")
	}
	b.WriteString("\nStart the reply with a subject line in the form \"Subject: ...\" on its own line, then the body.\n")
	b.WriteString("Keep it short and polite, under 120 words. Return only the email.\n")
	return b.String()
}

// splitSubject pulls a leading "Subject: ..." line out of generated
// email text. Falls back to the given subject when the model omits it.
func splitSubject(content, fallback string) (subject, body string) {
	subject = fallback
	body = strings.TrimSpace(content)
	if strings.HasPrefix(body, "Subject:") {
		if idx := strings.IndexByte(body, '\n'); idx > 0 {
			subject = strings.TrimSpace(strings.TrimPrefix(body[:idx], "Subject:"))
			body = strings.TrimSpace(body[idx+1:])
		}
	}
	return subject, body
}
