package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/evandroforks/xfce4-thunar/internal/logger"
	"github.com/evandroforks/xfce4-thunar/pkg/config"
	"github.com/evandroforks/xfce4-thunar/pkg/mime"
	"github.com/evandroforks/xfce4-thunar/pkg/monitor"
	"github.com/evandroforks/xfce4-thunar/pkg/store/infocache"
	"github.com/evandroforks/xfce4-thunar/pkg/vfs"
)

const usage = `Usage: thunar-vfs [flags] COMMAND [args]

Commands:
  info PATH...             resolve and print file descriptors
  rename PATH NEW_NAME     rename a file (rewrites the Name field for launchers)
  launch PATH [TARGET...]  print the execution plan for a file
  watch DIR...             watch directories and print change events

Flags:
`

func main() {
	configPath := flag.String("config", "", "Path to config file")
	logLevel := flag.String("log-level", "", "Override configured log level (DEBUG, INFO, WARN, ERROR)")
	display := flag.String("display", "", "Display target for launch plans")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	setupLogging(cfg.Logging)

	cache, err := config.NewCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to create classification cache: %v", err)
	}
	if cache != nil {
		defer cache.Close()
	}

	db := mime.NewDatabase()
	defer db.Close()

	resolver := newResolver(db, cache, cfg)

	switch args[0] {
	case "info":
		err = runInfo(resolver, args[1:])
	case "rename":
		err = runRename(resolver, args[1:])
	case "launch":
		err = runLaunch(resolver, args[1:], *display)
	case "watch":
		err = runWatch(resolver, args[1:], cfg.Monitor)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%v", err)
	}
}

func setupLogging(cfg config.LoggingConfig) {
	logger.SetLevel(cfg.Level)

	switch cfg.Output {
	case "stdout":
		logger.SetOutput(os.Stdout)
	case "stderr":
		logger.SetOutput(os.Stderr)
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file %s: %v", cfg.Output, err)
		}
		logger.SetOutput(f)
	}
}

func newResolver(db *mime.Database, cache infocache.Cache, cfg *config.Config) *vfs.Resolver {
	var opts []vfs.Option
	if len(cfg.Locales) > 0 {
		opts = append(opts, vfs.WithLocales(cfg.Locales))
	}
	if cache != nil {
		opts = append(opts, vfs.WithCache(cache))
	}
	return vfs.NewResolver(db, opts...)
}

func runInfo(resolver *vfs.Resolver, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("info: at least one path is required")
	}

	for _, path := range paths {
		info, err := resolver.Resolve(path)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", info.Path)
		fmt.Printf("  name:   %s\n", info.DisplayName)
		fmt.Printf("  type:   %s\n", info.Type)
		fmt.Printf("  mime:   %s\n", info.Mime.Name())
		fmt.Printf("  mode:   %04o\n", info.Mode)
		fmt.Printf("  owner:  %d:%d\n", info.UID, info.GID)
		fmt.Printf("  size:   %d\n", info.Size)
		fmt.Printf("  mtime:  %s\n", info.Mtime.Format("2006-01-02 15:04:05"))
		fmt.Printf("  inode:  %d on device %d\n", info.Inode, info.Device)
		fmt.Printf("  flags:  symlink=%t executable=%t\n",
			info.Flags.Has(vfs.FlagSymlink), info.Flags.Has(vfs.FlagExecutable))
		if icon, ok := info.Hint(vfs.HintIcon); ok {
			fmt.Printf("  icon:   %s\n", icon)
		}
		if name, ok := info.Hint(vfs.HintName); ok {
			fmt.Printf("  title:  %s\n", name)
		}

		info.Unref()
	}

	return nil
}

func runRename(resolver *vfs.Resolver, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("rename: expected PATH NEW_NAME")
	}

	info, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}
	defer info.Unref()

	if err := resolver.Rename(info, args[1]); err != nil {
		return err
	}

	fmt.Printf("renamed to %s\n", info.Path)
	return nil
}

func runLaunch(resolver *vfs.Resolver, args []string, display string) error {
	if len(args) == 0 {
		return fmt.Errorf("launch: expected PATH [TARGET...]")
	}

	info, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}
	defer info.Unref()

	plan, err := resolver.BuildPlan(info, args[1:], display)
	if err != nil {
		return err
	}

	fmt.Printf("workdir: %s\n", plan.WorkingDirectory)
	if plan.DisplayTarget != "" {
		fmt.Printf("display: %s\n", plan.DisplayTarget)
	}
	fmt.Printf("argv:")
	for _, arg := range plan.Argv {
		fmt.Printf(" %q", arg)
	}
	fmt.Println()
	return nil
}

func runWatch(resolver *vfs.Resolver, dirs []string, cfg config.MonitorConfig) error {
	if len(dirs) == 0 {
		return fmt.Errorf("watch: at least one directory is required")
	}
	if cfg.MaxWatches > 0 && len(dirs) > cfg.MaxWatches {
		return fmt.Errorf("watch: %d directories requested, configured maximum is %d",
			len(dirs), cfg.MaxWatches)
	}

	mon, err := monitor.New(resolver)
	if err != nil {
		return err
	}
	defer mon.Close()

	events := make(chan monitor.Event)
	for _, dir := range dirs {
		watch, err := mon.Watch(dir)
		if err != nil {
			return err
		}
		logger.Info("Watching %s (%s)", dir, watch.ID())

		go func(w *monitor.Watch) {
			for ev := range w.Events() {
				events <- ev
			}
		}(watch)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev := <-events:
			if ev.Info != nil {
				fmt.Printf("%-8s %s (%s)\n", ev.Type, ev.Path, ev.Info.Mime.Name())
				ev.Info.Unref()
			} else {
				fmt.Printf("%-8s %s\n", ev.Type, ev.Path)
			}
		case sig := <-sigCh:
			logger.Info("Received %s, shutting down", sig)
			return nil
		}
	}
}
