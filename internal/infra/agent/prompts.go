package agent

import "foundry-catchup/internal/domain/entity"

// newsPrompt is the news scout task. The block format is load-bearing: the
// parser in blocks.go consumes exactly this shape.
const newsPrompt = `You are a news scout focusing on Azure AI Foundry.
Use web search. Find the 5 most recent, credible news items about Azure AI Foundry (product announcements, major partnerships, GA/preview updates).

Return EXACTLY 5 entries formatted as blocks:
Headline: <max 10 words>
Summary: <2-3 sentences - neutral, specific, and concise>
Link: <direct URL>
---

Rules:
- Prefer official Microsoft sources, reputable tech media, and engineering blogs.
- No speculation; only verifiable information.
- Avoid duplicates; include distinct items.
- If fewer than 5 truly recent items exist, backfill with most impactful items from the last 6 months.`

// improvementsPrompt is the documentation analyst task.
const improvementsPrompt = `You are a documentation analyst for Azure AI Foundry.
Use web search to read official Microsoft documentation, release notes, and engineering blogs.

Task:
Extract the 5 most relevant recent TECHNICAL improvements (features or changes) for developers using Azure AI Foundry.
For each, include:
Headline: <feature/change in ~8 words>
Summary: <2-3 sentences focusing on what changed + impact on devs>
Link: <deep link to the source doc or release note>
Why it matters: <short bullet/phrase on developer benefit>

Format EXACTLY like:
Headline: ...
Summary: ...
Link: ...
Why it matters: ...
---

Rules:
- Prioritize official docs.microsoft.com/learn.microsoft.com/azure pages and Azure Updates.
- Be precise (mention API/SDK names, regions, quotas, GA/preview labels when available).
- Avoid marketing fluff.`

// PromptFor returns the scouting prompt for the given feed kind.
func PromptFor(kind entity.FeedKind) string {
	if kind == entity.FeedImprovements {
		return improvementsPrompt
	}
	return newsPrompt
}
