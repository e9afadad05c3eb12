package annotate

import (
	"strconv"
	"strings"
)

// Bullet is inserted at the cursor for a bullet list item.
const Bullet = "• "

// NextListNumber looks back through the text before the cursor for the last
// numbered item ("3. foo") and returns the number that should follow it.
func NextListNumber(before string) int {
	lines := strings.Split(before, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		head, _, ok := strings.Cut(line, ".")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(head)
		if err != nil || head[0] == '+' || n < 1 || n > 99 {
			continue
		}
		return n + 1
	}
	return 1
}

// ListPrefix is the numbered item prefix to insert at the cursor.
func ListPrefix(before string) string {
	return strconv.Itoa(NextListNumber(before)) + ". "
}

// NoteTemplates are skeletons that can be appended to a topic's notes.
var NoteTemplates = []string{
	"🔑 **KEY POINTS:**\n• \n• \n• \n\n⚠️ **WARNING:** \n\n💡 **TIP:** ",
	"📝 **SUMMARY:**\n\n⚙️ **CONFIGURATION STEPS:**\n1. \n2. \n3. \n\n✅ **VERIFICATION:**\n- ",
	"🎯 **USE CASE:**\n\n🔍 **TROUBLESHOOTING:**\n- Check \n- Verify \n- Test ",
}
