package news

import (
	"fmt"
	"strings"
)

// NoItemsMessage is shown when a result carries neither items nor an error
const NoItemsMessage = "No news items available."

var separator = "\n" + strings.Repeat("-", 80) + "\n"

// FormatMarkdown renders a result as numbered Markdown blocks.
// An error result is rendered as its message alone.
func FormatMarkdown(res Result) string {
	if res.Err != nil {
		return res.Err.Error
	}
	if len(res.Items) == 0 {
		return NoItemsMessage
	}

	lines := make([]string, 0, len(res.Items)*5)
	for i, item := range res.Items {
		lines = append(lines,
			fmt.Sprintf("**%d. %s**", i+1, item.Title),
			fmt.Sprintf("📅 %s", item.Published),
			fmt.Sprintf("📝 %s", item.Description),
			fmt.Sprintf("🔗 [Read more](%s)", item.Link),
			separator,
		)
	}
	return strings.Join(lines, "\n")
}

// FormatJSON renders a result as JSON indented by two spaces
func FormatJSON(res Result) string {
	data, err := encode(res.Records(), "  ")
	if err != nil {
		// records hold only strings
		data, _ = encode([]ErrorRecord{{Error: fmt.Sprintf("Failed to encode news: %v", err)}}, "  ")
	}
	return string(data)
}
