package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/tsforge/tsforge/internal/config"
	"github.com/tsforge/tsforge/internal/descriptor/snapshot"
	"github.com/tsforge/tsforge/internal/diagnostic"
	"github.com/tsforge/tsforge/internal/generics"
	"github.com/tsforge/tsforge/internal/resolver"
	"github.com/tsforge/tsforge/internal/typecache"
	"github.com/tsforge/tsforge/internal/typeinfo"
)

type resolveFlags struct {
	snapshotPath string
	typeName     string
	configPath   string
	pretty       bool
}

func parseResolveFlags(args []string) (resolveFlags, error) {
	var flags resolveFlags
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--snapshot":
			i++
			if i >= len(args) {
				return flags, fmt.Errorf("--snapshot requires a path")
			}
			flags.snapshotPath = args[i]
		case "--type":
			i++
			if i >= len(args) {
				return flags, fmt.Errorf("--type requires a name")
			}
			flags.typeName = args[i]
		case "--config":
			i++
			if i >= len(args) {
				return flags, fmt.Errorf("--config requires a path")
			}
			flags.configPath = args[i]
		case "--pretty":
			flags.pretty = true
		default:
			return flags, fmt.Errorf("unknown resolve flag: %s", args[i])
		}
	}
	if flags.snapshotPath == "" {
		return flags, fmt.Errorf("--snapshot is required")
	}
	return flags, nil
}

func runResolve(args []string) int {
	flags, err := parseResolveFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tsforge:", err)
		return 1
	}

	cfg := config.DefaultConfig()
	if flags.configPath != "" {
		cfg, err = config.Load(flags.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "tsforge:", err)
			return 1
		}
		validation := cfg.ValidateDetailed()
		for _, warning := range validation.Warnings {
			fmt.Fprintln(os.Stderr, "tsforge: warning:", warning)
		}
		if !validation.IsValid() {
			for _, e := range validation.Errors {
				fmt.Fprintln(os.Stderr, "tsforge: error:", e)
			}
			return 1
		}
	}

	diags := diagnostic.NewCollector(cfg.Strict, cfg.Quiet)

	snap, err := snapshot.Load(flags.snapshotPath)
	if err != nil {
		diags.Error(diagnostic.CategorySnapshotInvalid, flags.snapshotPath, err.Error())
		for _, d := range diags.Diagnostics() {
			fmt.Fprintln(os.Stderr, "tsforge:", d.String())
		}
		return 1
	}

	cache, err := typecache.New(cfg.CacheSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tsforge:", err)
		return 1
	}
	cache.SetDiagnostics(diags)

	names := snap.Roots()
	if flags.typeName != "" {
		names = []string{flags.typeName}
	}

	resolved := make(map[string]typeinfo.TypeInfo, len(names))
	for _, name := range names {
		root, err := snap.Root(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, "tsforge:", err)
			return 1
		}

		// One resolver and one generic context per root type: cycle
		// detection state must not leak between extraction requests. The
		// cache is shared across all of them.
		r, err := resolver.New(resolver.Options{
			MaxDepth:        cfg.MaxDepth,
			Cache:           cache,
			Diagnostics:     diags,
			UtilityPatterns: cfg.UtilityPatterns,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "tsforge:", err)
			return 1
		}

		info, err := r.ResolveType(context.Background(), root, 0, generics.NewContext())
		if err != nil {
			fmt.Fprintf(os.Stderr, "tsforge: resolving %s: %v\n", name, err)
			return 1
		}
		resolved[name] = info
	}

	for _, d := range diags.Diagnostics() {
		fmt.Fprintln(os.Stderr, "tsforge:", d.String())
	}
	if diags.HasErrors() {
		return 1
	}

	opts := []json.Options{json.Deterministic(true)}
	if flags.pretty {
		opts = append(opts, jsontext.WithIndent("  "))
	}
	out, err := json.Marshal(resolved, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tsforge:", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}
