// Package flagx lets each configuration stage parse only the flags it owns
// out of the full command line.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// DefaultEnvFile is returned by EnvFileFlags when no -e/-env flag is given.
const DefaultEnvFile = ".env"

// FilterArgs keeps the arguments naming one of allowedFlags, together with
// their values. Both "-f value" and "-f=value" are recognised; a following
// token that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, found := strings.Cut(arg, "="); found && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// JsonConfigFlags returns the JSON config path given with -c or -config, or
// "" when neither is present.
func JsonConfigFlags() string {
	return pathFlag(os.Args[1:], "", "c", "config")
}

// EnvFileFlags returns the dotenv path given with -e or -env, falling back
// to DefaultEnvFile.
func EnvFileFlags() string {
	return pathFlag(os.Args[1:], DefaultEnvFile, "e", "env")
}

// pathFlag parses a single string flag known under a short and a long name.
// When both appear the last one wins.
func pathFlag(args []string, def, short, long string) string {
	value := def

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&value, long, def, "")
	fs.StringVar(&value, short, def, "")
	_ = fs.Parse(FilterArgs(args, []string{"-" + short, "-" + long}))

	return value
}
