package service

import (
	"fmt"
	"time"
)

// MarketingStrategyTemplate builds the instruction block prepended to the user
// brief before it is sent to the text model. The model is asked for a raw JSON
// array so the response can be parsed without a tool-use protocol.
func MarketingStrategyTemplate(postsPerWeek int, startDate, endDate time.Time) string {
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}
	if endDate.IsZero() {
		endDate = startDate.AddDate(0, 0, 14)
	}

	return fmt.Sprintf(`Generate a marketing strategy with at most %d posts per week in the date range between %s and %s, where every post has the following details:

- **title**: concise and engaging.
- **description**: short but complete description of the post.
- **image_prompt**: a visual idea for the image accompanying the post.
- **tags**: relevant hashtags or keywords.
- **programming_date_to_post**: ISO date (YYYY-MM-DDTHH:MM:SS+00:00) for when to publish.

**Example of the JSON response you must return:**
[
  {
    "title": "Post title",
    "description": "Short but complete description of the post.",
    "image_prompt": "Visual idea for the image accompanying the post.",
    "tags": ["#marketing", "#strategy"],
    "programming_date_to_post": "YYYY-MM-DDTHH:MM:SS+00:00"
  }
]

**Rules**
1. At most %d posts per week, even if asked for more.
2. If no date is given, use today and two weeks after.
3. If no written strategy is given, generate a generic one.
4. Do not confirm anything, just return the result.
5. No obscene or inappropriate language, images or suggestions for social networks.
6. Generate nothing but JSON.

**Adjust dates and contents to the user preferences and market needs, and answer in JSON format.**
`, postsPerWeek, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), postsPerWeek)
}
