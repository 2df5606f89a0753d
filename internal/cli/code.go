package cli

import (
	"github.com/amterp/ra"

	"github.com/tools4freee/t4f/internal/checksum"
	"github.com/tools4freee/t4f/internal/model"
)

func registerCode(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("code")
	cmd.SetDescription("Generate a code with a valid check digit (IMEI, EAN, ISBN, WPS)")

	ctx.CodeFamily, _ = ra.NewString("family").
		SetOptional(true).
		SetUsage("imei, ean13, ean8, isbn10, isbn13 or wps").
		SetCompletionFunc(completeCodeFamilies).
		Register(cmd)

	ctx.CodeCount = registerCount(cmd)
	ctx.CodeUsed, _ = parent.RegisterCmd(cmd)
}

func registerValidate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("validate")
	cmd.SetDescription("Check a code, UUID, id or htpasswd line")

	ctx.ValidateFamily, _ = ra.NewString("family").
		SetUsage("Family of the value").
		SetCompletionFunc(completeValidatingFamilies).
		Register(cmd)

	ctx.ValidateValue, _ = ra.NewString("value").
		SetUsage("Value to check").
		Register(cmd)

	ctx.ValidateKind, _ = ra.NewString("kind").
		SetShort("k").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Id kind when validating an id").
		SetCompletionFunc(completeIDKinds).
		Register(cmd)

	ctx.ValidatePassword, _ = ra.NewString("password").
		SetShort("p").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Password to check when validating an htpasswd line").
		Register(cmd)

	ctx.ValidateUsed, _ = parent.RegisterCmd(cmd)
}

func runCode(family string, count int, interactive bool, out output) {
	app := mustApp(interactive)

	family, err := app.choose(family, "Code family", checksum.Families())
	if err != nil {
		Fatal(err)
	}
	if _, err := checksum.Lookup(family); err != nil {
		Fatal(err)
	}

	emit(app, &model.GenerationRequest{Family: model.Family(family)}, count, out)
}

func runValidate(family, value, kind, password string, interactive bool, out output) {
	app := mustApp(interactive)

	if model.Family(family) == model.FamilyHtpasswd && password == "" {
		var err error
		if password, err = app.Prompter.Password("Password to check"); err != nil {
			Fatal(requiredInput("--password", err))
		}
	}

	result, err := app.Generator.Validate(&model.ValidationRequest{
		Family:   model.Family(family),
		Value:    value,
		Variant:  kind,
		Password: password,
	})
	if err != nil {
		Fatal(err)
	}

	if out.json {
		if err := printJson(result); err != nil {
			Fatal(err)
		}
	} else if result.Valid {
		PrintSuccess("%s is a valid %s", RenderValue(result.Value), RenderBold(string(result.Family)))
	} else {
		PrintError("%s is not a valid %s: %s", RenderValue(result.Value), RenderBold(string(result.Family)), result.Reason)
	}

	if !result.Valid {
		exit(1)
	}
}
