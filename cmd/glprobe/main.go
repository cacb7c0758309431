// Command glprobe opens a driver profile through glcheck and prints what
// the validated context exposes.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/gogpu/glcheck"
	"github.com/gogpu/glcheck/fake"
)

var (
	profileFlag = &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "built-in driver profile to probe",
		Value:   fake.DefaultProfile().Name,
	}
	profileFileFlag = &cli.StringFlag{
		Name:  "profile-file",
		Usage: "TOML driver profile to probe instead of a built-in one",
	}
	policyFlag = &cli.StringFlag{
		Name:  "policy",
		Usage: "TOML restriction policy applied to the context",
	}
	traceFlag = &cli.BoolFlag{
		Name:  "trace",
		Usage: "log every native call at debug level",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "log level (debug|info|warn|error)",
		Value: "warn",
	}
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored output",
	}
)

var (
	profilesCommand = &cli.Command{
		Name:   "profiles",
		Usage:  "List the built-in driver profiles",
		Action: listProfiles,
	}
	reportCommand = &cli.Command{
		Name:   "report",
		Usage:  "Open a profile and print its capability report",
		Action: runReport,
		Flags:  []cli.Flag{profileFlag, profileFileFlag, policyFlag, traceFlag},
	}
	dumpCommand = &cli.Command{
		Name:   "dump",
		Usage:  "Write a driver profile as TOML",
		Action: dumpProfile,
		Flags:  []cli.Flag{profileFlag, profileFileFlag},
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:     "glprobe",
		Usage:    "inspect OpenGL contexts through the glcheck validation layer",
		Flags:    []cli.Flag{logLevelFlag, noColorFlag},
		Commands: []*cli.Command{profilesCommand, reportCommand, dumpCommand},
		Before:   setup,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup installs the logger and the color mode selected by global flags.
func setup(ctx *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(ctx.String(logLevelFlag.Name)))); err != nil {
		return fmt.Errorf("invalid --%s: %w", logLevelFlag.Name, err)
	}
	glcheck.SetLogger(slog.New(slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{Level: level})))
	if ctx.Bool(noColorFlag.Name) {
		color.NoColor = true
	}
	return nil
}

// loadProfile returns the profile named by --profile-file or --profile.
func loadProfile(ctx *cli.Context) (fake.Profile, error) {
	if path := ctx.String(profileFileFlag.Name); path != "" {
		return fake.LoadProfileFile(path)
	}
	name := ctx.String(profileFlag.Name)
	p, ok := fake.LookupProfile(name)
	if !ok {
		return fake.Profile{}, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(fake.Profiles(), ", "))
	}
	return p, nil
}

func listProfiles(ctx *cli.Context) error {
	renderProfiles(ctx.App.Writer, fake.Profiles(), fake.DefaultProfile().Name)
	return nil
}

func runReport(ctx *cli.Context) error {
	p, err := loadProfile(ctx)
	if err != nil {
		return err
	}
	opts := []glcheck.Option{}
	if path := ctx.String(policyFlag.Name); path != "" {
		policy, err := glcheck.LoadPolicyFile(path)
		if err != nil {
			return err
		}
		opts = append(opts, glcheck.WithRestrictions(policy))
	}
	if ctx.Bool(traceFlag.Name) {
		opts = append(opts, glcheck.WithTracing())
	}
	r, err := probe(p, opts...)
	if err != nil {
		return err
	}
	r.render(ctx.App.Writer)
	return nil
}

func dumpProfile(ctx *cli.Context) error {
	p, err := loadProfile(ctx)
	if err != nil {
		return err
	}
	return p.Encode(ctx.App.Writer)
}
