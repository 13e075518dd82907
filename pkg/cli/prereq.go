package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parsecbench/parsecbench/pkg/prereq"
)

var (
	prereqOutput string
	prereqStrict bool
)

var prereqCmd = &cobra.Command{
	Use:   "prereq",
	Short: "Check host prerequisites for runs and rendering",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		report := prereq.RunLocal(cfg.Manager.Bin, cfg.VM.BootScript)

		switch prereqOutput {
		case "json":
			payload, err := prereq.MarshalJSON(report)
			if err != nil {
				return fmt.Errorf("marshal report: %w", err)
			}
			fmt.Println(string(payload))
		case "text":
			printTextReport(report)
		default:
			return fmt.Errorf("unsupported output mode %q", prereqOutput)
		}

		pass := report.Pass
		if prereqStrict {
			pass = prereq.StrictPass(report)
		}
		if !pass {
			return fmt.Errorf("prerequisite checks failed")
		}
		return nil
	},
}

func printTextReport(report prereq.Report) {
	fmt.Printf("generated_at: %s\n", report.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Printf("host: %s/%s\n", report.HostOS, report.HostArch)
	fmt.Println()
	fmt.Println("checks:")
	for _, check := range report.Checks {
		status := "PASS"
		if !check.Pass {
			status = "FAIL"
		}
		fmt.Printf("- [%s] (%s) %s\n", status, strings.ToUpper(check.Severity), check.Name)
		fmt.Printf("  current: %s\n", check.Current)
		fmt.Printf("  required: %s\n", check.Required)
		if !check.Pass {
			fmt.Printf("  remediation: %s\n", check.Remediation)
		}
	}
	fmt.Println()
	if report.Pass {
		fmt.Println("result: PASS (all blocker checks satisfied)")
		return
	}
	fmt.Println("result: FAIL (one or more blocker checks failed)")
}

func init() {
	rootCmd.AddCommand(prereqCmd)

	prereqCmd.Flags().StringVar(&prereqOutput, "output", "text", "output mode: text|json")
	prereqCmd.Flags().BoolVar(&prereqStrict, "strict", false, "treat warnings as failures")
}
