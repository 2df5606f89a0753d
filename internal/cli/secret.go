package cli

import (
	"errors"
	"fmt"

	"github.com/amterp/ra"

	"github.com/tools4freee/t4f/internal/git"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/prompt"
	"github.com/tools4freee/t4f/internal/username"
)

func registerPassword(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("password")
	cmd.SetDescription("Generate a random password")

	ctx.PasswordLength, _ = ra.NewInt("length").
		SetShort("l").
		SetOptional(true).
		SetDefault(unsetInt).
		SetFlagOnly(true).
		SetUsage("Password length (4-128)").
		Register(cmd)

	ctx.PasswordCharset, _ = ra.NewString("charset").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Character classes: l lower, u upper, d digits, s symbols (e.g. 'lud')").
		Register(cmd)

	ctx.PasswordExcludeAmbiguous, _ = ra.NewBool("exclude-ambiguous").
		SetShort("x").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Leave out look-alike characters such as 0/O and 1/l").
		Register(cmd)

	ctx.PasswordCount = registerCount(cmd)
	ctx.PasswordUsed, _ = parent.RegisterCmd(cmd)
}

func registerHtpasswd(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("htpasswd")
	cmd.SetDescription("Create an htpasswd line for a user")

	ctx.HtpasswdUser, _ = ra.NewString("user").
		SetOptional(true).
		SetUsage("User name").
		Register(cmd)

	ctx.HtpasswdPassword, _ = ra.NewString("password").
		SetShort("p").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Password (prompted for when omitted)").
		Register(cmd)

	ctx.HtpasswdAlgorithm, _ = ra.NewString("algorithm").
		SetShort("a").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("bcrypt or sha").
		SetCompletionFunc(completeHtpasswdAlgorithms).
		Register(cmd)

	ctx.HtpasswdUsed, _ = parent.RegisterCmd(cmd)
}

func runPassword(length int, charset string, excludeAmbiguous bool, count int, out output) {
	emit(mustApp(false), &model.GenerationRequest{
		Family:           model.FamilyPassword,
		Length:           optionalInt(length),
		Charset:          charset,
		ExcludeAmbiguous: excludeAmbiguous,
	}, count, out)
}

func runHtpasswd(user, password, algorithm string, interactive bool, out output) {
	app := mustApp(interactive)

	var err error
	if user == "" {
		if user, err = app.Prompter.Input("User name", username.Default(git.NewClient())); err != nil {
			Fatal(requiredInput("user", err))
		}
	}
	if password == "" {
		if password, err = app.Prompter.Password(fmt.Sprintf("Password for %s", user)); err != nil {
			Fatal(requiredInput("--password", err))
		}
	}

	emit(app, &model.GenerationRequest{
		Family:   model.FamilyHtpasswd,
		Username: user,
		Password: password,
		Variant:  algorithm,
	}, 1, out)
}

func requiredInput(name string, err error) error {
	if errors.Is(err, prompt.ErrNonInteractive) {
		return fmt.Errorf("%s is required in non-interactive mode", name)
	}
	return err
}
