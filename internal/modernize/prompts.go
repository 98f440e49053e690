package modernize

const systemPrompt = `You are a senior Python software architect specializing in modernizing legacy
codebases. You analyze the dependencies of a requirements.txt file and recommend more modern,
efficient, or actively maintained alternatives. Keep suggestions structured and concise.`

const modernizePrompt = `These packages come from the requirements.txt of a GitHub repository, each with a
first suggestion:

%s
For each package:
1. Suggest a modern replacement, if relevant
2. Explain why it is an improvement (performance, async support, active maintenance)
Finish with a short modernization summary of two or three sentences.`
