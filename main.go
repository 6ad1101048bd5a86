package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"snowtree/calculator"
	"snowtree/sink"
	"snowtree/tree"
)

type flags struct {
	config string
	env    string
	coords string
	sink   string
	seed   int64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "snowtree",
		Short: "Falling snow animation for an LED tree.",
		Long: `Falling snow animation for LEDs at known 3D positions. Flakes spawn ` +
			`in the top third of the tree and fall from LED to nearby LEDs below.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.config, "config", "conf/config.ini", "ini configuration file")
	cmd.Flags().StringVar(&f.env, "env", ".env", "environment file")
	cmd.Flags().StringVar(&f.coords, "coords", "", "coordinates file, one [x, y, z] per line")
	cmd.Flags().StringVar(&f.sink, "sink", "", "output: serial, terminal, web or null")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed, 0 for time based")
	return cmd
}

func run(cmd *cobra.Command, f *flags) error {
	if err := godotenv.Load(f.env); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", f.env, err)
	}

	cfg, err := calculator.LoadConfig(f.config)
	if err != nil {
		return err
	}
	applyOverrides(cmd, f, cfg)
	if err := setupLogging(cfg); err != nil {
		return err
	}

	t, err := tree.Load(cfg.Coords, cfg.MaxDist)
	if err != nil {
		return err
	}

	out, err := sink.Open(cfg.Sink, t.Size())
	if err != nil {
		return fmt.Errorf("open %s sink: %w", cfg.Sink.Kind, err)
	}
	atexit.Register(func() {
		if err := out.Close(); err != nil {
			log.Warn("close sink: ", err)
		}
	})
	if err := sink.RegisterLocations(out, t.Coords); err != nil {
		return fmt.Errorf("register led locations: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.WithFields(log.Fields{
		"sink": cfg.Sink.Kind,
		"seed": seed,
	}).Info("启动")

	anim, err := calculator.NewAnimation(cfg, t, out, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if q, ok := out.(sink.Quitter); ok {
		go func() {
			select {
			case <-q.Quit():
				anim.Stop()
			case <-ctx.Done():
			}
		}()
	}

	err = anim.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// 优先级：命令行 > 环境变量 > 配置文件
func applyOverrides(cmd *cobra.Command, f *flags, cfg *calculator.Config) {
	if v := os.Getenv("SNOWTREE_SINK"); v != "" {
		cfg.Sink.Kind = v
	}
	if v := os.Getenv("SNOWTREE_COORDS"); v != "" {
		cfg.Coords = v
	}
	if v := os.Getenv("SNOWTREE_PORT"); v != "" {
		cfg.Sink.Port = v
	}

	if cmd.Flags().Changed("coords") {
		cfg.Coords = f.coords
	}
	if cmd.Flags().Changed("sink") {
		cfg.Sink.Kind = f.sink
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
}

func setupLogging(cfg *calculator.Config) error {
	log.SetLevel(cfg.LogLevel)

	path := cfg.LogFile
	// 终端预览占用屏幕，日志写到文件
	if path == "" && cfg.Sink.Kind == sink.KindTerminal {
		path = "snowtree.log"
	}
	if path == "" {
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	atexit.Register(func() { file.Close() })
	log.SetOutput(file)
	return nil
}
