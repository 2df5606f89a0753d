package cli

import (
	"encoding/json"
	"fmt"

	"github.com/tools4freee/t4f/internal/model"
)

// output prints generated values either plainly (one per line, safe to
// pipe) or as JSON.
type output struct {
	json bool
}

func (o output) value(v *model.GeneratedValue) {
	if o.json {
		if err := printJson(v); err != nil {
			Fatal(err)
		}
		return
	}
	fmt.Println(v.Value)
}

func (o output) batch(b *model.GeneratedBatch) {
	if o.json {
		if err := printJson(NewBatchOutput(b)); err != nil {
			Fatal(err)
		}
		return
	}
	for _, v := range b.Values {
		fmt.Println(v)
	}
}

// NewBatchOutput returns b with Values never null.
func NewBatchOutput(b *model.GeneratedBatch) model.GeneratedBatch {
	out := *b
	if out.Values == nil {
		out.Values = []string{}
	}
	return out
}

// FamiliesOutput wraps the family list for JSON output.
type FamiliesOutput struct {
	Families []model.FamilyInfo `json:"families"`
}

// NewFamiliesOutput creates a FamiliesOutput.
// Always returns an empty array (not null) when there are no families.
func NewFamiliesOutput(families []model.FamilyInfo) FamiliesOutput {
	if families == nil {
		families = []model.FamilyInfo{}
	}
	return FamiliesOutput{Families: families}
}

// ConfigPathOutput reports where the config file lives.
type ConfigPathOutput struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

// warnJsonNotSupported prints a warning to stderr when --json is used on an unsupported command.
func warnJsonNotSupported(command string) {
	PrintWarning("--json is not supported for '%s' (flag ignored)", command)
}
