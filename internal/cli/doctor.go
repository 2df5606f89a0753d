package cli

import (
	"fmt"
	"strings"

	"github.com/amterp/ra"
	"github.com/samber/lo"

	"github.com/tools4freee/t4f/internal/config"
	"github.com/tools4freee/t4f/internal/entropy"
	"github.com/tools4freee/t4f/internal/service"
	"github.com/tools4freee/t4f/internal/store"
)

func registerDoctor(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("doctor")
	cmd.SetDescription("Check the config file and random sources. Exit 0 if healthy, 1 if errors found.")

	ctx.DoctorFix, _ = ra.NewBool("fix").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Apply automatic fixes for issues with deterministic solutions").
		Register(cmd)

	ctx.DoctorDryRun, _ = ra.NewBool("dry-run").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Show what fixes would be applied without making changes").
		Register(cmd)

	ctx.DoctorVerbose, _ = ra.NewBool("verbose").
		SetShort("v").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Show a sample value for every family").
		Register(cmd)

	ctx.DoctorUsed, _ = parent.RegisterCmd(cmd)
}

// runDoctor does not go through NewApp: a broken config is what it reports on,
// not something to warn about and replace with defaults.
func runDoctor(fix, dryRun, verbose bool, out output) {
	if fix && dryRun {
		Fatal(fmt.Errorf("--fix and --dry-run cannot be used together"))
	}

	paths := config.NewPaths("")
	doctorService := service.NewDoctorService(store.NewConfigStore(paths), entropy.Detect())

	report, err := doctorService.Diagnose()
	if err != nil {
		Fatal(err)
	}

	if fix && len(report.Issues) > 0 {
		report, err = doctorService.Fix(report)
		if err != nil {
			Fatal(err)
		}
	}

	if out.json {
		if err := printJson(report); err != nil {
			Fatal(err)
		}
	} else {
		printDoctorReport(report, fix, dryRun, verbose)
	}

	if report.HasErrors() {
		exit(1)
	}
}

func printDoctorReport(report *service.DiagnosticReport, didFix, dryRun, verbose bool) {
	configState := "not found, using defaults"
	if report.ConfigExists {
		configState = "found"
	}
	fmt.Printf("Config: %s (%s)\n", RenderURL(report.ConfigPath), configState)

	failed := lo.CountBy(report.Families, func(f service.FamilyDiagnostic) bool { return f.Error != "" })
	fmt.Printf("Families: %d checked, %d failing\n", len(report.Families), failed)
	if verbose {
		for _, f := range report.Families {
			if f.Error != "" {
				fmt.Printf("  %-9s %s\n", f.Name, StyleError.Render(f.Error))
			} else {
				fmt.Printf("  %-9s %s\n", f.Name, RenderValue(f.Sample))
			}
		}
	}
	fmt.Println()

	fixedCount := 0
	if didFix {
		fixedCount = report.Summary.Fixed
	}
	if fixedCount > 0 {
		PrintSuccess("Fixed %d issue(s)", fixedCount)
		fmt.Println()
	}

	fixable := lo.CountBy(report.Issues, func(i service.Issue) bool { return i.Fixable })
	if dryRun && fixable > 0 {
		PrintInfo("Dry run: %d issue(s) would be fixed", fixable)
		fmt.Println()
	}

	if len(report.Issues) == 0 {
		if fixedCount == 0 {
			PrintSuccess("No issues found")
		} else {
			PrintSuccess("All issues resolved")
		}
		return
	}

	// Errors first, then warnings
	errs, warnings := lo.FilterReject(report.Issues, func(i service.Issue, _ int) bool {
		return i.Severity == service.SeverityError
	})
	for _, issue := range errs {
		printIssue(issue)
	}
	for _, issue := range warnings {
		printIssue(issue)
	}

	fmt.Println()
	summaryParts := []string{}
	if report.Summary.Errors > 0 {
		summaryParts = append(summaryParts, StyleError.Render(fmt.Sprintf("%d error(s)", report.Summary.Errors)))
	}
	if report.Summary.Warnings > 0 {
		summaryParts = append(summaryParts, StyleWarning.Render(fmt.Sprintf("%d warning(s)", report.Summary.Warnings)))
	}
	if fixedCount > 0 {
		summaryParts = append(summaryParts, StyleSuccess.Render(fmt.Sprintf("%d fixed", fixedCount)))
	}
	if report.Summary.FixFailed > 0 {
		summaryParts = append(summaryParts, StyleError.Render(fmt.Sprintf("%d fix failed", report.Summary.FixFailed)))
	}
	fmt.Printf("Summary: %s\n", strings.Join(summaryParts, ", "))

	if !didFix && fixable > 0 {
		fmt.Println()
		if dryRun {
			PrintInfo("Run 't4f doctor --fix' to apply these fixes")
		} else {
			PrintInfo("Run 't4f doctor --fix' to apply automatic fixes")
		}
	}
}

func printIssue(issue service.Issue) {
	var icon, code string
	if issue.Severity == service.SeverityError {
		icon = StyleError.Render(IconError)
		code = StyleError.Render(fmt.Sprintf("[%s]", issue.Code))
	} else {
		icon = StyleWarning.Render(IconWarning)
		code = StyleWarning.Render(fmt.Sprintf("[%s]", issue.Code))
	}

	location := ""
	if issue.Family != "" {
		location = " " + RenderMuted(string(issue.Family))
	}

	fmt.Printf("%s %s%s %s\n", icon, code, location, issue.Message)

	if issue.FixError != "" {
		fmt.Printf("  %s Fix failed: %s\n", StyleError.Render("→"), issue.FixError)
	} else if issue.FixAction != "" {
		if issue.Fixable {
			fmt.Printf("  %s Fix: %s\n", RenderMuted("→"), issue.FixAction)
		} else {
			fmt.Printf("  %s %s\n", RenderMuted("→"), issue.FixAction)
		}
	}
}
