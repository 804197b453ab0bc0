// Command arm64cg drives the backend end to end against one of the
// built-in fixture programs: lower -> allocate -> ABI splice -> encode,
// spec §6. Grounded on oisee-z80-optimizer/cmd/z80opt/main.go's
// rootCmd-plus-subcommands shape.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arm64cg/arm64cg/internal/config"
	"github.com/arm64cg/arm64cg/internal/fixtures"
	"github.com/arm64cg/arm64cg/internal/isa/arm64"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "arm64cg",
		Short: "AArch64 machine-code backend driver",
	}

	var (
		platformStr string
		ccStr       string
		variadic    bool
		configPath  string
	)

	compileCmd := &cobra.Command{
		Use:   "compile [program]",
		Short: "Compile a named fixture program to AArch64 machine code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("platform") {
				platformStr = cfg.Backend.Platform
			}
			if !cmd.Flags().Changed("variadic") {
				variadic = cfg.Backend.Variadic
			}

			log := logrus.New()
			if lvl, lerr := logrus.ParseLevel(cfg.Log.Level); lerr == nil {
				log.SetLevel(lvl)
			}

			fn := fixtures.Build(args[0])
			if fn == nil {
				return fmt.Errorf("unknown program %q (known: %s)", args[0], strings.Join(fixtures.Names, ", "))
			}

			platform, err := parsePlatform(platformStr)
			if err != nil {
				return err
			}
			_ = ccStr // calling convention comes from the fixture's own signature.

			ctx := arm64.NewContext(logrus.NewEntry(log))
			result, err := ctx.CompileFunction(fn, platform, variadic)
			if err != nil {
				return fmt.Errorf("compile failed: %w", err)
			}

			printResult(cmd, result)
			return nil
		},
	}
	compileCmd.Flags().StringVar(&platformStr, "platform", "linux", "target platform: linux or darwin")
	compileCmd.Flags().StringVar(&ccStr, "cc", "aapcs64", "calling convention (informational; the fixture's signature governs)")
	compileCmd.Flags().BoolVar(&variadic, "variadic", false, "reserve a variadic register-save area in the prologue")
	compileCmd.Flags().StringVar(&configPath, "config", "", "optional TOML config file (see internal/config)")

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Print lowering-rule coverage accumulated so far this process",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, unique, total := arm64.RuleCoverageReport()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no rules have fired yet; run `arm64cg compile` first")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %d\n", e.Rule, e.Firings)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d unique rules, %d total firings\n", unique, total)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the fixture program names compile accepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, n := range fixtures.Names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	rootCmd.AddCommand(compileCmd, rulesCmd, listCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parsePlatform(s string) (arm64.Platform, error) {
	switch strings.ToLower(s) {
	case "linux", "":
		return arm64.PlatformLinux, nil
	case "darwin", "macos":
		return arm64.PlatformDarwin, nil
	default:
		return 0, fmt.Errorf("unknown platform %q: use linux or darwin", s)
	}
}

func printResult(cmd *cobra.Command, result *arm64.CompileResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frame_size: %d bytes\n", result.FrameSize)
	fmt.Fprintf(out, "code: %d bytes\n", len(result.Bytes))
	for i := 0; i+4 <= len(result.Bytes); i += 4 {
		word := uint32(result.Bytes[i]) | uint32(result.Bytes[i+1])<<8 |
			uint32(result.Bytes[i+2])<<16 | uint32(result.Bytes[i+3])<<24
		fmt.Fprintf(out, "  %04x: %08x\n", i, word)
	}
	if len(result.Relocations) == 0 {
		return
	}
	fmt.Fprintln(out, "relocations:")
	for _, r := range result.Relocations {
		fmt.Fprintf(out, "  @%04x %s\n", r.InstrOffset, r.Symbol)
	}
}
