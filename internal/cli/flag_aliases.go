package cli

import (
	"github.com/spf13/pflag"
)

var yesFlagAliases = map[string]string{
	"force":      "yes",
	"assume-yes": "yes",
}

// aliasNormalizer resolves each alias key to its target flag name. Install
// it with SetGlobalNormalizationFunc so subcommands inherit it.
func aliasNormalizer(aliases map[string]string) func(*pflag.FlagSet, string) pflag.NormalizedName {
	return func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return pflag.NormalizedName(name)
	}
}
