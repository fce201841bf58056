package llm

// SystemPrompt instructs the model to answer with a bare JSON array so the
// orchestrator can extract the first [...] block from the response text.
const SystemPrompt = `You are a graduate-admissions advisor. Given a candidate summary and a list of university programs, recommend the best-fitting programs.
Respond with ONLY a JSON array, no prose. Each element must have this shape:
{"universityName": string, "programName": string, "reasoning": string, "matchScore": number between 0 and 1}
Recommend between 3 and 8 programs, best fit first. Only use universities from the provided list.`

// BuildUserPrompt assembles the compact user message for one run.
func BuildUserPrompt(input RecommendInput) string {
	return "Candidate:\n" + input.CandidateSummary + "\n\nPrograms:\n" + input.ProgramCatalog
}
