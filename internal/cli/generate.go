package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amterp/ra"

	t4ferr "github.com/tools4freee/t4f/internal/errors"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/service"
)

// unsetInt marks an int flag the user did not pass; the configured default applies.
const unsetInt = -1

func registerCount(cmd *ra.Cmd) *int {
	count, _ := ra.NewInt("count").
		SetShort("n").
		SetOptional(true).
		SetDefault(1).
		SetFlagOnly(true).
		SetUsage(fmt.Sprintf("Number of values to generate (1-%d)", service.MaxBatch)).
		Register(cmd)
	return count
}

func registerRange(cmd *ra.Cmd, what string) (*string, *string) {
	min, _ := ra.NewString("min").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Lower bound of the " + what + " (inclusive)").
		Register(cmd)

	max, _ := ra.NewString("max").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Upper bound of the " + what + " (inclusive)").
		Register(cmd)

	return min, max
}

func registerNumeric(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("integer")
	cmd.SetDescription("Generate a uniform random integer")
	ctx.IntegerMin, ctx.IntegerMax = registerRange(cmd, "range")
	ctx.IntegerCount = registerCount(cmd)
	ctx.IntegerUsed, _ = parent.RegisterCmd(cmd)

	cmd = ra.NewCmd("float")
	cmd.SetDescription("Generate a uniform random decimal at a fixed precision")
	ctx.FloatMin, ctx.FloatMax = registerRange(cmd, "range")
	ctx.FloatPrecision, _ = ra.NewInt("precision").
		SetShort("p").
		SetOptional(true).
		SetDefault(unsetInt).
		SetFlagOnly(true).
		SetUsage("Digits after the decimal point (0-10)").
		Register(cmd)
	ctx.FloatCount = registerCount(cmd)
	ctx.FloatUsed, _ = parent.RegisterCmd(cmd)

	cmd = ra.NewCmd("prime")
	cmd.SetDescription("Generate a random prime")
	ctx.PrimeMin, ctx.PrimeMax = registerRange(cmd, "search range")
	ctx.PrimeCount = registerCount(cmd)
	ctx.PrimeUsed, _ = parent.RegisterCmd(cmd)
}

func registerBytes(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("hex")
	cmd.SetDescription("Generate a random lowercase hex string")
	ctx.HexLength, _ = ra.NewInt("length").
		SetShort("l").
		SetOptional(true).
		SetDefault(unsetInt).
		SetFlagOnly(true).
		SetUsage("Number of hex characters").
		Register(cmd)
	ctx.HexCount = registerCount(cmd)
	ctx.HexUsed, _ = parent.RegisterCmd(cmd)

	cmd = ra.NewCmd("base64")
	cmd.SetDescription("Generate random bytes, Base64 encoded")
	ctx.Base64Bytes, _ = ra.NewInt("bytes").
		SetShort("l").
		SetOptional(true).
		SetDefault(unsetInt).
		SetFlagOnly(true).
		SetUsage("Number of random bytes before encoding").
		Register(cmd)
	ctx.Base64Count = registerCount(cmd)
	ctx.Base64Used, _ = parent.RegisterCmd(cmd)

	cmd = ra.NewCmd("uuid")
	cmd.SetDescription("Generate a version 4 UUID")
	ctx.UUIDCount = registerCount(cmd)
	ctx.UUIDUsed, _ = parent.RegisterCmd(cmd)
}

func registerDate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("date")
	cmd.SetDescription("Generate a random calendar date")

	ctx.DateFrom, _ = ra.NewString("from").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Earliest date, YYYY-MM-DD").
		Register(cmd)

	ctx.DateTo, _ = ra.NewString("to").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Latest date, YYYY-MM-DD").
		Register(cmd)

	ctx.DateCount = registerCount(cmd)
	ctx.DateUsed, _ = parent.RegisterCmd(cmd)
}

func registerID(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("id")
	cmd.SetDescription("Generate a sortable or compact unique id")

	ctx.IDKind, _ = ra.NewString("kind").
		SetOptional(true).
		SetUsage("uuidv7, ulid, ksuid, nanoid or cuid2").
		SetCompletionFunc(completeIDKinds).
		Register(cmd)

	ctx.IDCount = registerCount(cmd)
	ctx.IDUsed, _ = parent.RegisterCmd(cmd)
}

func registerFamilies(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("families")
	cmd.SetDescription("List every generator family")
	ctx.FamiliesUsed, _ = parent.RegisterCmd(cmd)
}

func runRanged(family model.Family, min, max string, precision, count int, out output) {
	req := &model.GenerationRequest{Family: family, Precision: optionalInt(precision)}
	var err error
	if req.Min, err = parseNumber("min", min); err != nil {
		Fatal(err)
	}
	if req.Max, err = parseNumber("max", max); err != nil {
		Fatal(err)
	}
	emit(mustApp(false), req, count, out)
}

func runBytes(family model.Family, length, count int, out output) {
	emit(mustApp(false), &model.GenerationRequest{Family: family, Length: optionalInt(length)}, count, out)
}

func runDate(from, to string, count int, out output) {
	emit(mustApp(false), &model.GenerationRequest{Family: model.FamilyDate, From: from, To: to}, count, out)
}

// runID falls back to the configured id kind when none is given.
func runID(kind string, count int, out output) {
	emit(mustApp(false), &model.GenerationRequest{Family: model.FamilyID, Variant: kind}, count, out)
}

func runFamilies(out output) {
	app := mustApp(false)
	families := app.Generator.Families()

	if out.json {
		if err := printJson(NewFamiliesOutput(families)); err != nil {
			Fatal(err)
		}
		return
	}

	width := 0
	for _, f := range families {
		width = max(width, len(f.Name))
	}
	for _, f := range families {
		tags := []string{}
		if f.Secure {
			tags = append(tags, "secure")
		}
		if f.Validates {
			tags = append(tags, "validates")
		}
		line := LabelValue(string(f.Name), f.Description, width+1)
		if len(tags) > 0 {
			line += " " + RenderMuted("("+strings.Join(tags, ", ")+")")
		}
		fmt.Println(line)
	}
}

// emit generates count values for req and prints them.
func emit(app *App, req *model.GenerationRequest, count int, out output) {
	if count < 1 || count > service.MaxBatch {
		Fatal(t4ferr.OutOfBounds("count", count, 1, service.MaxBatch))
	}

	if count == 1 {
		value, err := app.Generator.Generate(req)
		if err != nil {
			Fatal(err)
		}
		out.value(value)
		return
	}

	req.Count = count
	batch, err := app.Generator.GenerateBatch(req)
	if err != nil {
		Fatal(err)
	}
	out.batch(batch)
}

func mustApp(interactive bool) *App {
	app, err := NewApp(interactive)
	if err != nil {
		Fatal(err)
	}
	return app
}

func optionalInt(v int) *int {
	if v == unsetInt {
		return nil
	}
	return &v
}

// parseNumber parses an optional numeric flag. Empty means unset.
func parseNumber(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, t4ferr.InvalidParameter(field, fmt.Sprintf("%q is not a number", s))
	}
	return &v, nil
}
