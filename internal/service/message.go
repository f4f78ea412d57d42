package service

import (
	"errors"

	"github.com/diyaj1210/AI-Resume-Optimiser/internal/extractor"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/optimizer"
)

// SampleJobDescription pre-fills the job description field.
const SampleJobDescription = `Software Engineer - Python Developer

We are looking for a talented Software Engineer with expertise in Python development to join our dynamic team.

Key Responsibilities:
• Develop and maintain Python-based applications and services
• Collaborate with cross-functional teams to design and implement new features
• Write clean, maintainable, and efficient code
• Participate in code reviews and technical discussions
• Troubleshoot and debug complex issues

Required Skills:
• Strong proficiency in Python programming
• Experience with web frameworks (Django, Flask, or FastAPI)
• Knowledge of databases (SQL, PostgreSQL, MongoDB)
• Familiarity with version control systems (Git)
• Understanding of RESTful APIs and microservices
• Experience with cloud platforms (AWS, Azure, or GCP)
• Knowledge of containerization (Docker, Kubernetes)

Preferred Skills:
• Experience with machine learning libraries (TensorFlow, PyTorch)
• Knowledge of frontend technologies (JavaScript, React)
• Experience with CI/CD pipelines
• Understanding of agile development methodologies

Education:
• Bachelor's degree in Computer Science, Engineering, or related field
• 3+ years of experience in software development

We offer competitive salary, flexible work arrangements, and opportunities for professional growth.`

const credentialHint = "Please make sure you have set up your Gemini API key (GEMINI_API_KEY) in the .env file."

// Message renders any error from Run, or from building the pipeline, as text
// for the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return "Please upload a resume and provide a job description."
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return "Unsupported file format. Please use PDF or DOCX."
	case errors.Is(err, extractor.ErrEmptyContent):
		return "No text content found in the file."
	case errors.Is(err, extractor.ErrParseFailure):
		return "Failed to parse resume. Please check the file format."
	case errors.Is(err, optimizer.ErrMissingCredential):
		return "Error during optimization: " + err.Error() + ". " + credentialHint
	case errors.Is(err, optimizer.ErrGenerationFailure):
		return optimizer.FailureMessage(err)
	}
	return "Error during optimization: " + err.Error()
}
