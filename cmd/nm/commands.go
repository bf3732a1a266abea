package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "nm").
		WithSynopsis("nm [opts] command [opts]").
		WithDescription("nm is a tool for inspecting nested maps read from yaml and json documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return nmMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			CatCommand(cfg),
			GetCommand(cfg),
			FlatCommand(cfg),
			ContainersCommand(cfg),
			FilterCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			SnapshotCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [-l] [files]").
		WithDescription("view the containers of documents as a tree").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func CatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CatConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("cat").
		WithAliases("c").
		WithSynopsis("cat [files]").
		WithDescription("decode and re-encode documents, converting between -I and -O formats").
		WithRun(func(cc *cli.Context, args []string) error {
			return cat(cfg, cc, args)
		})
	cfg.Cat = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g", "ge").
		WithSynopsis("get <address> [files]").
		WithDescription("get the value at a dotted address from documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func FlatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FlatConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Flat, "flat").
		WithAliases("f").
		WithSynopsis("flat [-a] [-s] [files]").
		WithDescription("list the leaves of documents one per line").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return flat(cfg, cc, args)
		})
}

func ContainersCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ContainersConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Containers, "containers").
		WithAliases("cs").
		WithSynopsis("containers [-x] [-s] [files]").
		WithDescription("list the addresses of the containers in documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return containers(cfg, cc, args)
		})
}

func FilterCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FilterConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Filter, "filter").
		WithAliases("w", "where").
		WithSynopsis("filter [-v] <expr> [files]").
		WithDescription(filterDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return filter(cfg, cc, args)
		})
}

const filterDescription = `filter prints the leaves for which a boolean expression holds.

The expression sees

  key      the leaf's key
  value    the leaf's value
  address  the leaf's dotted address
  path     the leaf's address as a list
  depth    the number of keys in the address

and may call GetPath("a.b") to read other values of the document and
getenv("NAME") to read the environment.

Example

  nm filter 'type(value) == "int" && value > 10' doc.yaml`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-r] a b").
		WithDescription("diff the leaves of two documents, exiting 1 when they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [-m] <patchfile> [files] or patch -make a b").
		WithDescription("apply a json patch, or with -m a merge patch, to documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func SnapshotCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SnapshotConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Snapshot, "snapshot").
		WithAliases("snap").
		WithSynopsis("snapshot [-r] [files]").
		WithDescription("write typed snapshots of documents, or restore them with -r").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return snapshot(cfg, cc, args)
		})
}
