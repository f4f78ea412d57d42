package optimizer

import "fmt"

func agentInstruction() string {
	return `
You are an expert resume writer and Applicant Tracking System (ATS) specialist.
Follow the user's instructions exactly and return only what they ask for.
Base all content on the text you are given. Do not invent experience, employers, dates or credentials.
`
}

func keywordPrompt(jobDescription string) string {
	return fmt.Sprintf(`
Extract the most important keywords and skills from this job description.
Focus on technical skills, tools, technologies, and industry-specific terms.
Return only the keywords separated by commas, no explanations.

Job Description:
%s
`, jobDescription)
}

func rewritePrompt(resume, jobDescription, keywords string) string {
	return fmt.Sprintf(`
Create an optimized version of this resume tailored to the job description.

Original Resume:
%s

Job Description:
%s

Important Keywords to Include:
%s

Requirements:
1. Optimize for ATS (Applicant Tracking Systems)
2. Include relevant keywords naturally
3. Improve formatting and structure
4. Keep it professional and concise
5. Maintain the original information but enhance it

Return only the optimized resume text, no explanations.
`, resume, jobDescription, keywords)
}

func explanationPrompt(keywords string) string {
	return fmt.Sprintf(`
Explain the key changes made to optimize this resume.

Keywords Added/Emphasized:
%s

Focus on:
1. Keywords that were added or emphasized
2. Formatting improvements for ATS
3. Content enhancements
4. Overall optimization strategy

Keep the explanation concise and professional.
`, keywords)
}
