package scoring

const systemPrompt = `You are an experienced software development mentor. You grade GitHub
repositories from the metrics you are given. Answer only in the requested format.`

const compositePrompt = `Grade the overall skill level of the developer behind this GitHub repository on a 0-100 scale.

METRICS:
%s

Score each component within its maximum:
1. technical_skills (max 20): language diversity, code and commit quality
2. collaboration (max 15): teamwork, code review participation
3. communication (max 20): README quality, issue communication, documentation
4. discipline (max 15): commit regularity, continuity
5. problem_solving (max 15): issue resolution, bug handling
6. community_impact (max 15): open source contributions, community engagement

Respond with a single JSON object and nothing else:
{
  "total_score": 85,
  "technical_skills": 18,
  "collaboration": 12,
  "communication": 17,
  "discipline": 14,
  "problem_solving": 13,
  "community_impact": 11,
  "reasoning": "short explanation"
}`
