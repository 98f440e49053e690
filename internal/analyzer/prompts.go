package analyzer

const systemPrompt = `You are an experienced software engineering mentor. You assess GitHub
repositories from the data you are given. Follow the requested output format exactly.`

const commitQualityPrompt = `Grade the quality of these commit messages on a 0-100 scale.

Criteria:
- follows the Conventional Commits convention
- descriptive and easy to understand
- reflects the scope of the change
- professional language
- consistency

Commit messages:
%s

Reply with the numeric score only, for example: 80`

const readmeQualityPrompt = `Grade the quality of this README on a 0-100 scale.

Criteria:
- clear title
- project description
- installation instructions
- usage examples
- contribution guide
- license information
- formatting and structure
- code blocks and examples
- visuals (badges, diagrams)

README content:
%s

Reply with the numeric score only, for example: 75`

const codeReviewPrompt = `Grade the quality of these code review comments on a 0-100 scale.

Criteria:
- constructive feedback
- technical depth
- clarity
- professional language
- improvement suggestions

Review data:
%s

Reply with the numeric score only, for example: 70`

const narrativePrompt = `Below are the analytics of a GitHub project. From them, assess the developer's
technical skills, communication style, professionalism and open source impact.

Format:
- **General Assessment**
- **Strengths**
- **Areas for Improvement**
- **Professional Development Recommendations**

Repository: %s
Total score: %.1f / 100 (%s, level: %s)

Key metrics:
- README quality: %.1f%%
- Commit discipline: %.1f%% (%s rhythm)
- Issue communication: %.1f%% described, %.1f%% professional titles
- Problem solving: %.1f%% resolved, average resolution %.1f days
- Open source: %d external repositories, community score %.1f

Write a detailed, insightful analysis in a professional tone. Avoid unnecessary jargon.`
