package cli

import (
	"fmt"
	"strings"

	"github.com/amterp/ra"
	"github.com/samber/lo"

	"github.com/tools4freee/t4f/internal/generator"
	"github.com/tools4freee/t4f/internal/model"
)

func registerAddress(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("address")
	cmd.SetDescription("Generate test data: postal, ipv4, ipv6, mac, coin or email addresses")

	ctx.AddressKind, _ = ra.NewString("kind").
		SetOptional(true).
		SetUsage("postal, ipv4, ipv6, mac, coin or email").
		SetCompletionFunc(completeAddressKinds).
		Register(cmd)

	ctx.AddressVariant, _ = ra.NewString("variant").
		SetShort("v").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Country, vendor, coin, e-mail domain, or private/ula for IPs").
		SetCompletionFunc(completeVariants).
		Register(cmd)

	ctx.AddressSeparator, _ = ra.NewString("separator").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("MAC separator: ':', '-', '.' or 'none'").
		Register(cmd)

	ctx.AddressCount = registerCount(cmd)
	ctx.AddressUsed, _ = parent.RegisterCmd(cmd)
}

// addressFamily maps an address kind to the family that generates it.
func addressFamily(kind string) (model.Family, error) {
	k := generator.AddressKind(strings.ToLower(strings.TrimSpace(kind)))
	if !lo.Contains(generator.AddressKinds, k) {
		return "", fmt.Errorf("unknown address kind %q (expected one of %s)", kind, strings.Join(addressKindNames(), ", "))
	}
	if k == generator.AddressPostal {
		return model.FamilyAddress, nil
	}
	return model.Family(k), nil
}

func addressKindNames() []string {
	return lo.Map(generator.AddressKinds, func(k generator.AddressKind, _ int) string {
		return string(k)
	})
}

func runAddress(kind, variant, separator string, count int, interactive bool, out output) {
	app := mustApp(interactive)

	kind, err := app.choose(kind, "Address kind", addressKindNames())
	if err != nil {
		Fatal(err)
	}
	family, err := addressFamily(kind)
	if err != nil {
		Fatal(err)
	}

	emit(app, &model.GenerationRequest{
		Family:    family,
		Variant:   variant,
		Separator: separator,
	}, count, out)
}
