package cli

import (
	"errors"
	"fmt"

	"github.com/amterp/ra"

	"github.com/tools4freee/t4f/internal/editor"
	"github.com/tools4freee/t4f/internal/prompt"
	"github.com/tools4freee/t4f/internal/service"
	"github.com/tools4freee/t4f/internal/store"
)

func registerConfig(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("config")
	cmd.SetDescription("Manage the t4f config file")

	initCmd := ra.NewCmd("init")
	initCmd.SetDescription("Write a config file with the default settings")
	ctx.ConfigInitForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Overwrite an existing config file").
		Register(initCmd)
	ctx.ConfigInitUsed, _ = cmd.RegisterCmd(initCmd)

	showCmd := ra.NewCmd("show")
	showCmd.SetDescription("Print the effective config")
	ctx.ConfigShowUsed, _ = cmd.RegisterCmd(showCmd)

	pathCmd := ra.NewCmd("path")
	pathCmd.SetDescription("Print the config file location")
	ctx.ConfigPathUsed, _ = cmd.RegisterCmd(pathCmd)

	editCmd := ra.NewCmd("edit")
	editCmd.SetDescription("Open the config in $EDITOR; saved only if it is valid")
	ctx.ConfigEditUsed, _ = cmd.RegisterCmd(editCmd)

	ctx.ConfigUsed, _ = parent.RegisterCmd(cmd)
}

func runConfigInit(force bool, interactive bool) {
	app := mustApp(interactive)

	if app.Configs.Exists() && !force {
		overwrite, err := app.Prompter.Confirm(fmt.Sprintf("%s exists. Overwrite with defaults?", app.Configs.Path()), false)
		if err != nil {
			if errors.Is(err, prompt.ErrNonInteractive) {
				Fatal(fmt.Errorf("%w: %s (use --force to overwrite)", service.ErrConfigExists, app.Configs.Path()))
			}
			Fatal(err)
		}
		if !overwrite {
			PrintInfo("Kept existing config")
			return
		}
		force = true
	}

	if _, err := app.Configs.Init(force); err != nil {
		Fatal(err)
	}
	PrintSuccess("Wrote %s", RenderURL(app.Configs.Path()))
}

func runConfigShow(out output) {
	app := mustApp(false)

	if out.json {
		if err := printJson(app.Config); err != nil {
			Fatal(err)
		}
		return
	}

	data, err := store.EncodeConfig(app.Config)
	if err != nil {
		Fatal(err)
	}
	if !app.Configs.Exists() {
		PrintInfo("No config file at %s, showing defaults", RenderURL(app.Configs.Path()))
	}
	fmt.Print(string(data))
}

func runConfigPath(out output) {
	app := mustApp(false)
	if out.json {
		if err := printJson(ConfigPathOutput{Path: app.Configs.Path(), Exists: app.Configs.Exists()}); err != nil {
			Fatal(err)
		}
		return
	}
	fmt.Println(app.Configs.Path())
}

func runConfigEdit(interactive bool) {
	app := mustApp(interactive)

	original, err := app.Configs.Raw()
	if err != nil {
		Fatal(err)
	}

	ed := editor.NewEditor("")
	content := original
	for {
		content, err = ed.Edit(content, "t4f-config-*.toml")
		if err != nil {
			Fatal(fmt.Errorf("editor failed: %w", err))
		}
		if content == original {
			PrintInfo("No changes")
			return
		}

		_, err = app.Configs.Replace(content)
		if err == nil {
			break
		}
		PrintError("Invalid config: %v", err)
		again, promptErr := app.Prompter.Confirm("Edit again?", true)
		if promptErr != nil || !again {
			Fatal(fmt.Errorf("config not saved"))
		}
	}

	PrintSuccess("Saved %s", RenderURL(app.Configs.Path()))
}
