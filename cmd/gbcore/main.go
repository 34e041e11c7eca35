// Command gbcore runs the cycle-counted LR35902 core against a ROM image.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/itarato-go/gbcore/internal/bitutil"
	"github.com/itarato-go/gbcore/internal/cpu"
	"github.com/itarato-go/gbcore/internal/emu"
	"github.com/itarato-go/gbcore/internal/logctx"
	"github.com/itarato-go/gbcore/internal/romheader"
)

func main() {
	var (
		romPath  string
		steps    int
		trace    bool
		debug    bool
		startPC  uint16
		logLevel string
	)

	root := &cobra.Command{
		Use:   "gbcore",
		Short: "Cycle-counted Sharp LR35902 CPU/bus/timer/interrupt core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bitutil.SelfTest(); err != nil {
				return fmt.Errorf("self-test: %w", err)
			}

			lvl := logctx.Notice
			switch logLevel {
			case "debug":
				lvl = logctx.Debug
			case "info":
				lvl = logctx.Info
			}
			logger := logctx.New(lvl, log.Default())

			rom, err := os.ReadFile(romPath)
			if err != nil {
				return fmt.Errorf("read rom: %w", err)
			}

			if h, err := romheader.Parse(rom); err == nil {
				logger.Infof("ROM: %q type=%s romBanks=%d ramBytes=%d checksum-ok=%v",
					h.Title, h.CartTypeStr, h.ROMBanks, h.RAMSizeBytes, romheader.ChecksumOK(rom))
			}

			cfg := emu.Config{
				Trace:    trace,
				StartPC:  startPC,
				MaxSteps: steps,
				Debugger: debug,
				DebugIn:  os.Stdin,
				DebugOut: os.Stdout,
				Logger:   logger,
			}
			e := emu.New(cfg, rom)
			if err := e.Run(); err != nil {
				var fault *cpu.FaultError
				if errors.As(err, &fault) {
					fmt.Fprintln(os.Stderr, logctx.ErrBanner("%s", fault.Error()))
				}
				return err
			}
			logger.Noticef("final: %s", e.DumpRegisters())
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVar(&romPath, "rom", "rom.bin", "path to a ROM image (up to 32KB, flat-mapped)")
	flags.IntVar(&steps, "steps", 0, "max instructions to execute (0 = unbounded)")
	flags.BoolVar(&trace, "trace", false, "log PC/registers before every instruction (shown only with --log-level debug)")
	flags.BoolVar(&debug, "debug", false, "attach the interactive debugger on stdin/stdout")
	flags.Uint16Var(&startPC, "start-pc", 0x0000, "initial program counter")
	flags.StringVar(&logLevel, "log-level", "notice", "log verbosity: debug, info, or notice")

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
