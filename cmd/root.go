package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/huangsam/quickstats/core"
	"github.com/huangsam/quickstats/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the collaborators shared by every command of one invocation.
type app struct {
	v      *viper.Viper
	cfg    *contract.Config
	client contract.GitClient

	// checkPreconditions fails fast outside a usable repository.
	checkPreconditions func(dir string) error
	// newLineReader picks how the menu reads input.
	newLineReader func(in io.Reader, out io.Writer) LineReader
}

func newApp() *app {
	return &app{
		v:                  viper.New(),
		cfg:                &contract.Config{},
		client:             contract.NewLocalGitClient(),
		checkPreconditions: contract.CheckPreconditions,
		newLineReader:      newLineReader,
	}
}

// initConfig points viper at the config file and environment variables.
func (a *app) initConfig() {
	v := a.v
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".quickstats")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("QUICKSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		// The first non-empty variable wins
		env := "QUICKSTATS_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		_ = v.BindEnv(key, env, legacy)
	}
}

// setup checks preconditions, merges every config source and validates it.
func (a *app) setup(ctx context.Context) error {
	if err := a.checkPreconditions("."); err != nil {
		return err
	}

	a.initConfig()
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	input := &contract.ConfigRawInput{}
	if err := a.v.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	input.RepoPathStr = "."
	return contract.ProcessAndValidate(ctx, a.cfg, a.client, input)
}

// runRoot prints the selected report, or opens the menu when none is selected.
func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	name, err := selectReport(cmd, args)
	if err != nil {
		return err
	}
	if name == "" {
		reader := a.newLineReader(cmd.InOrStdin(), cmd.OutOrStdout())
		return a.runMenu(cmd.Context(), cmd.OutOrStdout(), reader)
	}
	return core.Execute(cmd.Context(), a.cfg, a.client, name, "", cmd.OutOrStdout())
}

// run executes the command tree and prints usage for malformed command lines.
func run(ctx context.Context, rootCmd *cobra.Command, args []string) error {
	rootCmd.SetArgs(normalizeArgs(args))
	err := rootCmd.ExecuteContext(ctx)
	var argErr *contract.InvalidArgumentError
	if errors.As(err, &argErr) {
		_ = rootCmd.Usage()
	}
	return err
}

// Execute runs the root command. Interrupts cancel the running git query.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, newRootCmd(newApp()), os.Args[1:])
}
