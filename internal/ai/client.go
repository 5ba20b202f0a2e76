package ai

import (
	"context"
	"fmt"
	"strings"

	"go-greenhouse-autopilot/internal/profile"
)

// Client is the interface for the two LLM call shapes the field
// resolver needs: constrained single-choice selection and free-text
// answer generation.
type Client interface {
	// SelectOption asks the model to pick one of the presented options
	// for a closed-choice question. The raw model output is returned;
	// the resolver enforces closure over the option set.
	SelectOption(ctx context.Context, question string, options []string, cand *profile.ApplicationProfile) (string, error)

	// GenerateAnswer produces a short professional free-text answer to
	// a custom application question.
	GenerateAnswer(ctx context.Context, question string, cand *profile.ApplicationProfile) (string, error)
}

// buildSelectionSystemPrompt embeds the candidate context plus the
// answer policy so the selection rules live in configuration, not here.
func buildSelectionSystemPrompt(cand *profile.ApplicationProfile, policy Policy) string {
	var b strings.Builder
	b.WriteString(`You are an expert at filling out job applications. You must select EXACTLY ONE option from the provided list that best matches the context. Your response must be word-for-word identical to one of the options provided.

CANDIDATE CONTEXT:
`)
	fmt.Fprintf(&b, "- Name: %s\n", cand.FullName())
	fmt.Fprintf(&b, "- Education: %s, %s in %s\n", cand.Education.University, cand.Education.Degree, cand.Education.Field)
	if cand.JobContext.GraduationDate != nil {
		fmt.Fprintf(&b, "- Graduation Date: %s\n", cand.JobContext.GraduationDate.Format("January 2006"))
	}
	if cand.JobContext.IsStudent {
		b.WriteString("- Status: Current Student\n")
	} else {
		b.WriteString("- Status: Recent Graduate\n")
	}
	fmt.Fprintf(&b, "- LinkedIn: %s\n", cand.LinkedinURL)
	fmt.Fprintf(&b, "- Portfolio: %s\n", cand.PortfolioURL)

	b.WriteString("\nSELECTION GUIDELINES:\n1. Personal Information Fields:\n")
	fmt.Fprintf(&b, "   - For pronouns: prefer options matching %q\n", strings.Join(policy.Pronouns, ", "))
	fmt.Fprintf(&b, "   - For gender: prefer options matching %q\n", strings.Join(policy.Gender, ", "))
	fmt.Fprintf(&b, "   - For Hispanic/Latino: prefer options matching %q\n", strings.Join(policy.Hispanic, ", "))
	fmt.Fprintf(&b, "   - For race/ethnicity: prefer options matching %q\n", strings.Join(policy.Ethnicity, ", "))
	fmt.Fprintf(&b, "   - For veteran status: prefer options matching %q\n", strings.Join(policy.Veteran, ", "))
	fmt.Fprintf(&b, "   - For disability status: prefer options matching %q\n", strings.Join(policy.Disability, ", "))
	fmt.Fprintf(&b, `
2. Timeline/Date Fields:
   - For graduation dates: select options closest to %s
   - For duration: prefer standard options (12-weeks for internships)

3. Work Authorization:
   - Answer %q for work authorization questions
   - Answer "No" for previous employment unless explicitly known

4. Source/Referral:
   - Prefer "Company Website" or "LinkedIn" if available
   - Use "Other" or "Job Board" as fallback options

5. General Rules:
   - NEVER create new options or modify existing ones
   - Choose the most professional and appropriate option
   - When in doubt, choose the most conservative option

IMPORTANT: You MUST respond with EXACTLY ONE of the provided options, word-for-word. DO NOT create new responses or modify the options.`, policy.GradTarget, policy.Authorization)

	return b.String()
}

func buildSelectionUserPrompt(question string, options []string) string {
	return fmt.Sprintf(`Question: %q
Available options: %s

Select ONE option from the list above that best matches the selection guidelines. Your response must match one of these options exactly.`, question, strings.Join(options, ", "))
}

// buildAnswerSystemPrompt carries the full candidate and job-search
// context so generated answers stay grounded in the profile.
func buildAnswerSystemPrompt(cand *profile.ApplicationProfile) string {
	var b strings.Builder
	b.WriteString("You are an expert at crafting professional job application responses. You have the following context about the candidate:\n\nCANDIDATE PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", cand.FullName())
	fmt.Fprintf(&b, "- Education: %s\n", cand.Education.University)
	fmt.Fprintf(&b, "- Degree: %s in %s\n", cand.Education.Degree, cand.Education.Field)
	if cand.Education.EndDate != nil {
		fmt.Fprintf(&b, "- Expected Graduation: %s\n", cand.Education.EndDate.Format("1/2/2006"))
	}
	fmt.Fprintf(&b, "- Location: %s\n", cand.Education.Location)
	if cand.Experience != nil {
		fmt.Fprintf(&b, "- Current Role: %s at %s\n", cand.Experience.Position, cand.Experience.Company)
		fmt.Fprintf(&b, "- Experience: %s\n", cand.Experience.Description)
	}

	jc := cand.JobContext
	fmt.Fprintf(&b, "\nJOB PREFERENCES:\n- Seeking: %s position\n", jc.EmploymentType)
	if jc.GraduationDate != nil {
		fmt.Fprintf(&b, "- Timeline: Graduating %s %d\n", jc.GraduationSeason, jc.GraduationDate.Year())
	}
	if jc.IsStudent {
		b.WriteString("- Status: Current Student\n")
	} else {
		b.WriteString("- Status: Recent Graduate\n")
	}
	fmt.Fprintf(&b, "- Skills: %s\n", jc.Skills)

	if len(jc.Projects) > 0 {
		b.WriteString("\nNOTABLE PROJECTS:\n")
		for _, p := range jc.Projects {
			fmt.Fprintf(&b, "- %s: %s\n", p.Name, p.Description)
		}
	}

	b.WriteString(`
RESPONSE GUIDELINES:
1. Keep responses professional, positive, and aligned with the job application context
2. Highlight relevant skills and experiences from the profile
3. Show enthusiasm and willingness to learn
4. Be honest but optimistic about capabilities
5. For technical questions, focus on relevant coursework and projects
6. For behavioral questions, provide specific examples when possible
7. Keep responses concise (2-3 sentences) unless more detail is clearly needed
8. Avoid overly personal information or irrelevant details
9. Maintain a professional tone throughout
10. Focus on value you can bring to the company

Write a response that best answers the application question while following these guidelines.`)

	return b.String()
}

func buildAnswerUserPrompt(question string) string {
	return fmt.Sprintf(`Please provide a professional response to this job application question: %s

Remember to keep the response concise, professional, and relevant to the role. Focus on demonstrating value and enthusiasm while aligning with the candidate's job preferences and timeline.`, question)
}
