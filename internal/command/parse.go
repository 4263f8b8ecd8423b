package command

import "strings"

// Parse splits a command line into its verb and arguments.
// A leading ':' is ignored. An empty or blank line yields an empty verb.
func Parse(line string) (verb string, args []string) {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, ":")

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
