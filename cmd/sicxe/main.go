// Command sicxe is the driver front end for the SIC/XE virtual machine:
// it parses CLI arguments, loads an object program, and runs the
// execute loop. It is a thin shell around the vm and loader packages —
// no instruction semantics live here.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/lookbusy1344/sicxe-emulator/config"
	"github.com/lookbusy1344/sicxe-emulator/loader"
	"github.com/lookbusy1344/sicxe-emulator/vm"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sicxe",
		Short: "SIC/XE virtual machine",
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDisasmCmd())
	rootCmd.AddCommand(newHexdumpCmd())
	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var maxCycles uint64
	var clockHz uint
	var trace bool
	var step bool
	var deviceDir string

	cmd := &cobra.Command{
		Use:   "run <object-file>",
		Short: "Load and execute an object program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("sicxe: %w", err)
			}
			if !cmd.Flags().Changed("max-cycles") {
				maxCycles = cfg.Execution.MaxCycles
			}
			if !cmd.Flags().Changed("clock-hz") {
				clockHz = cfg.Execution.ClockHz
			}
			if !cmd.Flags().Changed("trace") {
				trace = cfg.Trace.Enabled
			}
			if !cmd.Flags().Changed("step") {
				step = cfg.Execution.DefaultMode == "step"
			}

			m, err := loadMachine(args[0], deviceDir)
			if err != nil {
				return err
			}
			m.MaxCycles = maxCycles

			if step {
				runStepLoop(m)
			} else {
				runPaced(m, clockHz)
			}

			if trace {
				for _, line := range m.InstructionHistory() {
					fmt.Println(line)
				}
			}
			for _, d := range m.Diagnostics() {
				fmt.Fprintf(os.Stderr, "cycle %d: %s\n", d.Cycle, d.Message)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "stop after this many cycles (0 = unbounded)")
	cmd.Flags().UintVar(&clockHz, "clock-hz", 0, "pace execution to this clock frequency (0 = unthrottled)")
	cmd.Flags().BoolVar(&trace, "trace", false, "print the decoded-instruction history after halt")
	cmd.Flags().BoolVar(&step, "step", false, "plain-text single-step loop instead of running to halt")
	cmd.Flags().StringVar(&deviceDir, "device-dir", "", "directory lazily-created .dev files are opened in")

	return cmd
}

// runPaced steps the machine to halt, sleeping between cycles to honour
// clockHz when non-zero. This is the driver-side clock pacing named in
// spec.md §5/§6; the core engine itself has no notion of wall-clock time.
func runPaced(m *vm.Machine, clockHz uint) {
	if clockHz == 0 {
		m.Run()
		return
	}
	period := time.Second / time.Duration(clockHz)
	for {
		m.Step()
		if m.Halted() || (m.MaxCycles != 0 && m.Cycles >= m.MaxCycles) {
			return
		}
		time.Sleep(period)
	}
}

func newDisasmCmd() *cobra.Command {
	var deviceDir string
	cmd := &cobra.Command{
		Use:   "disasm <object-file>",
		Short: "Load an object program and print its header metadata without executing (no disassembly)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMachine(args[0], deviceDir)
			if err != nil {
				return err
			}
			fmt.Printf("program %q  load=0x%05X  length=0x%05X  entry=0x%05X\n",
				m.Program.Name, m.Program.LoadAddr, m.Program.Length, m.Program.EntryPoint)
			return nil
		},
	}
	cmd.Flags().StringVar(&deviceDir, "device-dir", "", "directory lazily-created .dev files are opened in")
	return cmd
}

func newHexdumpCmd() *cobra.Command {
	var addr uint32
	var rows int
	var deviceDir string

	cmd := &cobra.Command{
		Use:   "hexdump <object-file>",
		Short: "Load an object program and print a hex dump window of its memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMachine(args[0], deviceDir)
			if err != nil {
				return err
			}
			for _, line := range m.HexDump(addr, rows) {
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&addr, "addr", 0, "start address of the hex dump window")
	cmd.Flags().IntVar(&rows, "rows", 16, "number of 16-byte rows to print")
	cmd.Flags().StringVar(&deviceDir, "device-dir", "", "directory lazily-created .dev files are opened in")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the emulator's TOML configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Printf("%+v\n", cfg)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to the platform config path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if err := cfg.Save(); err != nil {
				return err
			}
			fmt.Println("wrote", config.GetConfigPath())
			return nil
		},
	})
	return cmd
}

func loadMachine(path, deviceDir string) (*vm.Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sicxe: %w", err)
	}
	defer f.Close()

	m := vm.NewMachine()
	m.Devices.Dir = deviceDir
	if err := loader.Load(m, f); err != nil {
		return nil, fmt.Errorf("sicxe: %w", err)
	}
	return m, nil
}

// runStepLoop is the reduced, terminal-only form of spec.md §6's
// keyboard-driven stepping surface: it prints the register file, executes
// one instruction, then reads one line of stdin to advance. The
// instruction itself is not printed.
// The interactive inspector itself (breakpoints, scrollable memory
// view) remains out of scope; this is a scripted loop, not a UI.
func runStepLoop(m *vm.Machine) {
	scanner := bufio.NewScanner(os.Stdin)
	for m.IsRunning() {
		fmt.Println(m.DumpRegisters())
		if m.MaxCycles != 0 && m.Cycles >= m.MaxCycles {
			return
		}
		m.Step()
		if !scanner.Scan() {
			return
		}
	}
}
