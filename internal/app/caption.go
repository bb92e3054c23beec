package app

import (
	"fmt"
	"strings"
	"time"
)

// buildCaption assembles the delivery caption: the run date, one line per
// article display title, and the channel plug.
func buildCaption(now time.Time, titles []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎗️ %s Current Affairs 🎗️\n\n", now.Format("02 January 2006"))
	for _, t := range titles {
		fmt.Fprintf(&b, "👉 %s\n", t)
	}
	b.WriteString("\n🎉 Join us :- @gujtest 🎉")
	return b.String()
}
