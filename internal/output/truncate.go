package output

import "unicode/utf8"

// CharacterLimit is the largest response, in characters, handed to a caller.
const CharacterLimit = 100_000

// TruncationNotice is appended to every truncated response.
const TruncationNotice = `

... [Response truncated due to length]

To get complete information:
1. Use more specific filters or search terms
2. Request smaller batches with lower 'limit' parameter
3. Use 'concise' detail level instead of 'detailed'
4. Consider using JSON format for better readability of large data
`

// Truncate returns s unchanged when it has at most limit characters.
// Otherwise it keeps the first limit characters and appends TruncationNotice.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + TruncationNotice
		}
		n++
	}
	return s
}
