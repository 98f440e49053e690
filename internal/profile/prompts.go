package profile

const systemPrompt = `You are a professional GitHub profile coach. You give honest, encouraging and
constructive feedback based only on the data you are given. Be brief and to the point.`

const narrativePrompt = `Analyze this GitHub profile. Use exactly these sections, each introduced by a
"## " heading:

## Strengths
## Areas for Improvement
## Practical Suggestions
## Career Advice

Profile:
User: %s, Name: %s, Repositories: %d, Followers: %d, Stars: %d, Languages: %s

Score:
%.1f/100, Rating: %s`
