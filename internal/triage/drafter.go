package triage

import (
	"fmt"
	"strings"
)

// draftReply composes the candidate reply plus its citation list. The reply
// body enumerates entries with the same numbering as the citations; when no
// entries exist it states that no documentation was found instead of
// fabricating references.
func draftReply(ticketTitle string, entries []RetrievedArticle) Draft {
	citations := make([]string, 0, len(entries))
	for i, entry := range entries {
		citations = append(citations, fmt.Sprintf("[%d] %s", i+1, entry.Title))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for contacting our support team regarding %q.\n\n", ticketTitle)

	if len(entries) > 0 {
		b.WriteString("Based on your inquiry, I've found some relevant information that should help resolve your issue:\n\n")
		for i, entry := range entries {
			fmt.Fprintf(&b, "%d. **%s**\n   %s\n\n", i+1, entry.Title, entry.Snippet)
		}
		b.WriteString("Please review the information above. If this resolves your issue, you can mark this ticket as resolved. If you need further assistance, our support team will be happy to help.\n\n")
	} else {
		b.WriteString("I wasn't able to find specific documentation for your issue, but our support team will review your ticket and provide assistance shortly.\n\n")
		b.WriteString("Your ticket has been assigned to a human agent who will respond within our standard SLA timeframe.\n\n")
	}

	b.WriteString("Best regards,\nSmart Helpdesk AI Assistant")

	return Draft{
		Reply:     b.String(),
		Citations: citations,
	}
}
