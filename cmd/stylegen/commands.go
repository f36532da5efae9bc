package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stylegen/internal/config"
	"github.com/goliatone/go-stylegen/pkg/declaration"
	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/orchestrator"
	"github.com/goliatone/go-stylegen/pkg/prompt"
)

// newOrchestrator builds the pipeline from configuration overridden by
// command flags.
func newOrchestrator(env *localEnv, cmd *cli.Command) (*orchestrator.Orchestrator, error) {
	policy := env.Cfg.Compile.DeclarationPolicy()
	if cmd.Bool("strict") {
		policy = declaration.PolicyStrict
	}

	options := []orchestrator.Option{
		orchestrator.WithLogger(env.Log),
		orchestrator.WithPolicy(policy),
		orchestrator.WithDefaultRenderer(env.Cfg.Compile.Renderer),
	}

	dir := cmd.String("modules")
	if dir == "" {
		dir = env.Cfg.Compile.Modules
	}
	if dir != "" {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			return nil, fmt.Errorf("modules directory '%s' is not accessible", dir)
		}
		options = append(options, orchestrator.WithModulesFS(os.DirFS(dir)))
	}

	if presets := cmd.String("presets"); presets != "" {
		transformer, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(presets)), filepath.Base(presets))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithTransformer(transformer))
	}

	orch := orchestrator.New(options...)
	if err := orch.Err(); err != nil {
		return nil, err
	}
	env.Log.Debug("Pipeline ready",
		zap.String("policy", policy.String()),
		zap.String("modules", dir),
		zap.Strings("available", orch.Modules()))
	return orch, nil
}

func runCompile(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	orch, err := newOrchestrator(env, cmd)
	if err != nil {
		return err
	}
	attrs, err := loadAttributes(cmd.String("attrs"), os.Stdin)
	if err != nil {
		return err
	}
	return generate(ctx, env, cmd, orch, attrs)
}

func runPrompt(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	orch, err := newOrchestrator(env, cmd)
	if err != nil {
		return err
	}
	module, ok := orch.Module(cmd.String("module"))
	if !ok {
		return fmt.Errorf("module %q not found (available: %s)", cmd.String("module"), strings.Join(orch.Modules(), ", "))
	}

	var options []prompt.Option
	if cmd.Bool("no-responsive") {
		options = append(options, prompt.WithoutResponsive())
	}
	if cmd.Bool("no-hover") {
		options = append(options, prompt.WithoutHover())
	}
	attrs, err := prompt.Collect(ctx, prompt.NewSurveyDriver(os.Stderr), module, options...)
	if err != nil {
		return err
	}

	if fname := cmd.String("save"); fname != "" {
		data, err := yaml.Marshal(attrs)
		if err != nil {
			return fmt.Errorf("unable to marshal attributes: %w", err)
		}
		if err := os.WriteFile(fname, data, 0o644); err != nil {
			return fmt.Errorf("unable to save attributes to '%s': %w", fname, err)
		}
		env.Log.Info("Attributes saved", zap.String("file", fname), zap.Int("count", len(attrs)))
	}
	return generate(ctx, env, cmd, orch, attrs)
}

func generate(ctx context.Context, env *localEnv, cmd *cli.Command, orch *orchestrator.Orchestrator, attrs model.Attributes) error {
	out, err := orch.Generate(ctx, orchestrator.Request{
		Module:     cmd.String("module"),
		Slug:       cmd.String("slug"),
		Attributes: attrs,
		Renderer:   cmd.String("renderer"),
	})
	if err != nil {
		return err
	}
	if len(out) == 0 {
		env.Log.Info("Nothing to output, no field produced a rule", zap.String("module", cmd.String("module")))
	}
	return writeOutput(cmd.String("out"), out)
}

func runModules(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	orch, err := newOrchestrator(env, cmd)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, name := range orch.Modules() {
		module, _ := orch.Module(name)
		fmt.Fprintf(&b, "%s\t%d fields\t%d icon offsets\n", name, len(module.Fields), len(module.IconOffsets))
	}
	return writeOutput("", []byte(b.String()))
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		err   error
		data  []byte
		state string
	)
	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	env.Log.Debug("Outputing configuration", zap.String("state", state), zap.String("file", fname))
	return writeOutput(fname, data)
}

// loadAttributes reads an attribute bag from a JSON or YAML file, or from
// stdin when path is "-". Scalar values are kept as their text.
func loadAttributes(path string, stdin io.Reader) (model.Attributes, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read attributes '%s': %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unable to parse attributes '%s': %w", path, err)
	}
	attrs := make(model.Attributes, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			attrs[key] = ""
		case string:
			attrs[key] = v
		case map[string]any, []any:
			return nil, fmt.Errorf("attribute %q in '%s' must be a scalar", key, path)
		default:
			attrs[key] = fmt.Sprint(v)
		}
	}
	return attrs, nil
}

func writeOutput(fname string, data []byte) error {
	if fname == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(fname, data, 0o644); err != nil {
		return fmt.Errorf("unable to write '%s': %w", fname, err)
	}
	return nil
}
