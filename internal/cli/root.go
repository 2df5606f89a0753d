package cli

import (
	"os"

	"github.com/amterp/ra"

	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/version"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Json           *bool

	// integer command
	IntegerUsed  *bool
	IntegerMin   *string
	IntegerMax   *string
	IntegerCount *int

	// float command
	FloatUsed      *bool
	FloatMin       *string
	FloatMax       *string
	FloatPrecision *int
	FloatCount     *int

	// prime command
	PrimeUsed  *bool
	PrimeMin   *string
	PrimeMax   *string
	PrimeCount *int

	// hex command
	HexUsed   *bool
	HexLength *int
	HexCount  *int

	// base64 command
	Base64Used  *bool
	Base64Bytes *int
	Base64Count *int

	// uuid command
	UUIDUsed  *bool
	UUIDCount *int

	// code command
	CodeUsed   *bool
	CodeFamily *string
	CodeCount  *int

	// validate command
	ValidateUsed     *bool
	ValidateFamily   *string
	ValidateValue    *string
	ValidateKind     *string
	ValidatePassword *string

	// address command
	AddressUsed      *bool
	AddressKind      *string
	AddressVariant   *string
	AddressSeparator *string
	AddressCount     *int

	// password command
	PasswordUsed             *bool
	PasswordLength           *int
	PasswordCharset          *string
	PasswordExcludeAmbiguous *bool
	PasswordCount            *int

	// htpasswd command
	HtpasswdUsed      *bool
	HtpasswdUser      *string
	HtpasswdPassword  *string
	HtpasswdAlgorithm *string

	// date command
	DateUsed  *bool
	DateFrom  *string
	DateTo    *string
	DateCount *int

	// id command
	IDUsed  *bool
	IDKind  *string
	IDCount *int

	// families command
	FamiliesUsed *bool

	// config command
	ConfigUsed      *bool
	ConfigInitUsed  *bool
	ConfigInitForce *bool
	ConfigShowUsed  *bool
	ConfigPathUsed  *bool
	ConfigEditUsed  *bool

	// serve command
	ServeUsed *bool
	ServeHost *string
	ServePort *int

	// doctor command
	DoctorUsed    *bool
	DoctorFix     *bool
	DoctorDryRun  *bool
	DoctorVerbose *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("t4f")
	cmd.SetDescription("Random identifiers, check-digit codes and test data (v" + version.Version + ")")

	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Json, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print results as JSON").
		Register(cmd, ra.WithGlobal(true))

	registerNumeric(cmd, ctx)
	registerBytes(cmd, ctx)
	registerCode(cmd, ctx)
	registerValidate(cmd, ctx)
	registerAddress(cmd, ctx)
	registerPassword(cmd, ctx)
	registerHtpasswd(cmd, ctx)
	registerDate(cmd, ctx)
	registerID(cmd, ctx)
	registerFamilies(cmd, ctx)
	registerConfig(cmd, ctx)
	registerServe(cmd, ctx)
	registerDoctor(cmd, ctx)
	registerCompletion(cmd, ctx)

	cmd.ParseOrExit(os.Args[1:])

	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	interactive := !*ctx.NonInteractive
	out := output{json: *ctx.Json}

	switch {
	case *ctx.IntegerUsed:
		runRanged(model.FamilyInteger, *ctx.IntegerMin, *ctx.IntegerMax, unsetInt, *ctx.IntegerCount, out)

	case *ctx.FloatUsed:
		runRanged(model.FamilyFloat, *ctx.FloatMin, *ctx.FloatMax, *ctx.FloatPrecision, *ctx.FloatCount, out)

	case *ctx.PrimeUsed:
		runRanged(model.FamilyPrime, *ctx.PrimeMin, *ctx.PrimeMax, unsetInt, *ctx.PrimeCount, out)

	case *ctx.HexUsed:
		runBytes(model.FamilyHex, *ctx.HexLength, *ctx.HexCount, out)

	case *ctx.Base64Used:
		runBytes(model.FamilyBase64, *ctx.Base64Bytes, *ctx.Base64Count, out)

	case *ctx.UUIDUsed:
		runBytes(model.FamilyUUID, unsetInt, *ctx.UUIDCount, out)

	case *ctx.CodeUsed:
		runCode(*ctx.CodeFamily, *ctx.CodeCount, interactive, out)

	case *ctx.ValidateUsed:
		runValidate(*ctx.ValidateFamily, *ctx.ValidateValue, *ctx.ValidateKind, *ctx.ValidatePassword, interactive, out)

	case *ctx.AddressUsed:
		runAddress(*ctx.AddressKind, *ctx.AddressVariant, *ctx.AddressSeparator, *ctx.AddressCount, interactive, out)

	case *ctx.PasswordUsed:
		runPassword(*ctx.PasswordLength, *ctx.PasswordCharset, *ctx.PasswordExcludeAmbiguous, *ctx.PasswordCount, out)

	case *ctx.HtpasswdUsed:
		runHtpasswd(*ctx.HtpasswdUser, *ctx.HtpasswdPassword, *ctx.HtpasswdAlgorithm, interactive, out)

	case *ctx.DateUsed:
		runDate(*ctx.DateFrom, *ctx.DateTo, *ctx.DateCount, out)

	case *ctx.IDUsed:
		runID(*ctx.IDKind, *ctx.IDCount, out)

	case *ctx.FamiliesUsed:
		runFamilies(out)

	case *ctx.ConfigInitUsed:
		if out.json {
			warnJsonNotSupported("config init")
		}
		runConfigInit(*ctx.ConfigInitForce, interactive)

	case *ctx.ConfigShowUsed:
		runConfigShow(out)

	case *ctx.ConfigPathUsed:
		runConfigPath(out)

	case *ctx.ConfigEditUsed:
		runConfigEdit(interactive)

	case *ctx.ServeUsed:
		if out.json {
			warnJsonNotSupported("serve")
		}
		runServe(*ctx.ServeHost, *ctx.ServePort)

	case *ctx.DoctorUsed:
		runDoctor(*ctx.DoctorFix, *ctx.DoctorDryRun, *ctx.DoctorVerbose, out)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}
