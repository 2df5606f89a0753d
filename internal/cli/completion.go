package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/amterp/ra"
	"github.com/samber/lo"

	"github.com/tools4freee/t4f/internal/checksum"
	"github.com/tools4freee/t4f/internal/generator"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/refdata"
)

// Completion functions run during ParseOrExit, before NewApp() is called,
// so they read only static tables and never touch the config file.

func filterPrefix(options []string, toComplete string) ([]string, ra.CompletionDirective) {
	toComplete = strings.ToLower(toComplete)
	result := lo.Filter(options, func(o string, _ int) bool {
		return strings.HasPrefix(strings.ToLower(o), toComplete)
	})
	return result, ra.CompletionDirectiveNoFileComp
}

// completeCodeFamilies returns checksum family names matching the given prefix.
func completeCodeFamilies(toComplete string) ([]string, ra.CompletionDirective) {
	return filterPrefix(checksum.Families(), toComplete)
}

// completeValidatingFamilies returns families accepted by validate.
func completeValidatingFamilies(toComplete string) ([]string, ra.CompletionDirective) {
	names := lo.FilterMap(model.Families(), func(f model.FamilyInfo, _ int) (string, bool) {
		return string(f.Name), f.Validates
	})
	return filterPrefix(names, toComplete)
}

func completeAddressKinds(toComplete string) ([]string, ra.CompletionDirective) {
	return filterPrefix(addressKindNames(), toComplete)
}

func completeIDKinds(toComplete string) ([]string, ra.CompletionDirective) {
	kinds := lo.Map(generator.IDKinds, func(k generator.IDKind, _ int) string { return string(k) })
	return filterPrefix(kinds, toComplete)
}

func completeHtpasswdAlgorithms(toComplete string) ([]string, ra.CompletionDirective) {
	return filterPrefix([]string{string(generator.HtpasswdBcrypt), string(generator.HtpasswdSHA)}, toComplete)
}

// completeVariants offers --variant values for the address kind already on
// the command line.
func completeVariants(toComplete string) ([]string, ra.CompletionDirective) {
	return filterPrefix(variantsFor(kindFromArgs(os.Args)), toComplete)
}

func variantsFor(kind string) []string {
	tables := refdata.Default()
	switch generator.AddressKind(kind) {
	case generator.AddressPostal:
		return tables.CountryCodes()
	case generator.AddressMAC:
		return append([]string{"random"}, tables.VendorKeys()...)
	case generator.AddressCoin:
		return tables.CoinKeys()
	case generator.AddressEmail:
		return tables.EmailNames().Domains
	case generator.AddressIPv4:
		return []string{"private"}
	case generator.AddressIPv6:
		return []string{"ula"}
	}
	return nil
}

// kindFromArgs finds the positional address kind after the "address"
// subcommand, skipping flags and their values.
func kindFromArgs(args []string) string {
	takesValue := map[string]bool{
		"-v": true, "--variant": true,
		"-s": true, "--separator": true,
		"-n": true, "--count": true,
	}
	seen := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !seen {
			seen = arg == "address"
			continue
		}
		if takesValue[arg] {
			i++
			continue
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		return strings.ToLower(arg)
	}
	return ""
}

// registerCompletion adds the "t4f completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
