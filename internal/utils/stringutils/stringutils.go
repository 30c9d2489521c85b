package stringutils

import "fmt"

// INClause builds the placeholder list and argument slice for a SQL IN
// clause, numbering placeholders from startIndex.
func INClause[T any](list []T, startIndex int) (placeholders []string, args []any) {
	placeholders = make([]string, len(list))
	args = make([]any, len(list))
	for i, item := range list {
		placeholders[i] = fmt.Sprintf("$%d", startIndex+i)
		args[i] = item
	}

	return placeholders, args
}
