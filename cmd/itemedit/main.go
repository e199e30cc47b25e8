package main

import (
	"os"
	"strings"

	"itemedit/internal/cli"
)

func isItemID(s string) bool {
	s = strings.TrimSpace(s)
	// Generated ids are "item-<unix millis>", but the sample item is "item-1" and users may paste variants.
	return strings.HasPrefix(s, "item-") && len(s) > len("item-")
}

// persistent flags that take a separate value argument
var valueFlags = map[string]bool{
	"--db":        true,
	"--user":      true,
	"--format":    true,
	"--log-file":  true,
	"--log-level": true,
}

// rewriteDirectEditArgs turns `itemedit [flags] <item-id>` into `itemedit [flags] items edit <item-id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first, so we look for the first positional token.
func rewriteDirectEditArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isItemID(argv[i+1]) {
				return insertEdit(argv, i+1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			// Unknown flags are skipped without consuming a value so the item id is never eaten.
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case isItemID(a):
			return insertEdit(argv, i)
		default:
			return argv
		}
	}
	return argv
}

func insertEdit(argv []string, at int) []string {
	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:at]...)
	out = append(out, "items", "edit")
	return append(out, argv[at:]...)
}

func main() {
	os.Args = rewriteDirectEditArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
