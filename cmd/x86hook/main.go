package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/x86hook/x86hook/pkg/xbatch"
	"github.com/x86hook/x86hook/pkg/xhook"
	"github.com/x86hook/x86hook/pkg/xinstr"
	"github.com/x86hook/x86hook/pkg/xopcode"
	"github.com/x86hook/x86hook/pkg/xreloc"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "x86hook",
		Short: "32-bit x86 instruction decoder, relocator, and inline hook installer",
	}

	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newRelocateCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newSelftestCmd())
	return rootCmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [hex-bytes]",
		Short: "Decode one instruction from a hex-encoded byte string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseHexWindow(args[0])
			if err != nil {
				return err
			}

			ins, err := xinstr.Decode(code)
			if err != nil {
				return fmt.Errorf("decode failed: %w", err)
			}

			fmt.Printf("size:       %d\n", ins.Size)
			fmt.Printf("prefixes:   %d (% x)\n", ins.Prefixes, ins.Prefix[:ins.Prefixes])
			fmt.Printf("opcode:     % x\n", ins.Opcode[:ins.Opcodes])
			fmt.Printf("opsize:     %v\n", ins.OpsizePrefix)
			fmt.Printf("addrsize:   %v\n", ins.AddrsizePrefix)
			if ins.HasModRM {
				fmt.Printf("modrm:      %#02x\n", ins.ModRM)
			}
			if ins.HasSIB {
				fmt.Printf("sib:        %#02x\n", ins.SIB)
			}
			if ins.HasDisp {
				fmt.Printf("disp:       %d\n", ins.Disp.Int32())
			}
			if ins.HasImmd {
				fmt.Printf("immd:       %d\n", ins.Immd.Int32())
			}
			if ins.Flags&xopcode.Relative != 0 {
				fmt.Println("relative:   yes")
			}
			return nil
		},
	}
}

func newRelocateCmd() *cobra.Command {
	var dstAddr, srcAddr uint32

	cmd := &cobra.Command{
		Use:   "relocate [hex-bytes]",
		Short: "Decode one instruction and re-emit it for a new address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseHexWindow(args[0])
			if err != nil {
				return err
			}

			ins, err := xinstr.Decode(code)
			if err != nil {
				return fmt.Errorf("decode failed: %w", err)
			}

			out := make([]byte, 16)
			n, err := xreloc.Relocate(out, &ins, dstAddr, srcAddr)
			if err != nil {
				return fmt.Errorf("relocate failed: %w", err)
			}

			fmt.Printf("%x\n", out[:n])
			return nil
		},
	}
	cmd.Flags().Uint32Var(&dstAddr, "dst", 0, "destination address the instruction is being moved to")
	cmd.Flags().Uint32Var(&srcAddr, "src", 0, "cursor position immediately after the original instruction")
	return cmd
}

func newInstallCmd() *cobra.Command {
	var fnAddr, trampAddr, arg, callback uint32

	cmd := &cobra.Command{
		Use:   "install [fn-hex-bytes]",
		Short: "Build trampoline code for hooking a function and show the patched bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("invalid hex: %w", err)
			}
			if len(fn) < 5 {
				return fmt.Errorf("need at least 5 bytes of function code, got %d", len(fn))
			}

			tramp := make([]byte, xhook.MinTrampolineSize)
			bytesReplaced, trampUsed, err := xhook.Install(fn, tramp, fnAddr, trampAddr, arg, callback)
			if err != nil {
				return fmt.Errorf("install failed: %w", err)
			}

			fmt.Printf("bytes replaced:   %d\n", bytesReplaced)
			fmt.Printf("trampoline bytes: %d\n", trampUsed)
			fmt.Printf("patched fn:       %x\n", fn[:bytesReplaced])
			fmt.Printf("trampoline:       %x\n", tramp[:trampUsed])
			return nil
		},
	}
	cmd.Flags().Uint32Var(&fnAddr, "fn-addr", 0, "address the hooked function executes at")
	cmd.Flags().Uint32Var(&trampAddr, "tramp-addr", 0, "address the caller's trampoline buffer executes at")
	cmd.Flags().Uint32Var(&arg, "arg", 0, "value pushed to the callback")
	cmd.Flags().Uint32Var(&callback, "callback", 0, "address of the callback")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var numWorkers int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "batch [spec-file]",
		Short: "Install hooks for many independent functions concurrently",
		Long: "Reads one hook spec per line, each \"name fn-hex fn-addr tramp-addr arg callback\"\n" +
			"(addresses, arg, and callback are hex, with or without a 0x prefix), from\n" +
			"spec-file or stdin if no file is given, and installs them across a pool of\n" +
			"worker goroutines. Each spec's function bytes must not overlap any other's.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open spec file: %w", err)
				}
				defer f.Close()
				r = f
			}

			specs, err := parseBatchSpecs(r)
			if err != nil {
				return err
			}
			if len(specs) == 0 {
				return fmt.Errorf("no hook specs given")
			}

			in := xbatch.NewInstaller(numWorkers)
			in.RunAll(specs, verbose)

			installed, failed := in.Stats()
			if failed > 0 {
				return fmt.Errorf("%d/%d hooks failed to install", failed, installed+failed)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&numWorkers, "workers", 0, "number of worker goroutines (0 = runtime.NumCPU())")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each hook's outcome as it completes")
	return cmd
}

// parseBatchSpecs reads one xbatch.Spec per non-blank, non-comment line of r.
func parseBatchSpecs(r io.Reader) ([]xbatch.Spec, error) {
	var specs []xbatch.Spec
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 6 {
			return nil, fmt.Errorf("line %d: want 6 fields (name fn-hex fn-addr tramp-addr arg callback), got %d", lineNo, len(fields))
		}

		fn, err := hex.DecodeString(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid fn-hex: %w", lineNo, err)
		}
		if len(fn) < 5 {
			return nil, fmt.Errorf("line %d: fn-hex needs at least 5 bytes, got %d", lineNo, len(fn))
		}

		addrs := make([]uint32, 4)
		for i, f := range fields[2:] {
			v, err := strconv.ParseUint(strings.TrimPrefix(f, "0x"), 16, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid hex value %q: %w", lineNo, f, err)
			}
			addrs[i] = uint32(v)
		}

		specs = append(specs, xbatch.Spec{
			Name:      fields[0],
			Fn:        fn,
			FnAddr:    addrs[0],
			TrampAddr: addrs[1],
			Arg:       addrs[2],
			Callback:  addrs[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return specs, nil
}

func newSelftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run a handful of built-in decode/relocate sanity checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := []struct {
				name string
				run  func() error
			}{
				{"decode NOP", func() error { return checkDecodeSize("90", 1) }},
				{"decode CALL rel32", func() error { return checkDecodeSize("e800000000", 5) }},
				{"decode prefixed MOV", func() error { return checkDecodeSize("66b83412", 4) }},
				{"relocate JMP rel8 widens to rel32", checkRelocateWidensJmp8},
			}

			failures := 0
			for _, c := range checks {
				if err := c.run(); err != nil {
					fmt.Printf("FAIL  %s: %v\n", c.name, err)
					failures++
					continue
				}
				fmt.Printf("PASS  %s\n", c.name)
			}
			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			return nil
		},
	}
}

func checkDecodeSize(hexStr string, wantSize int) error {
	code, err := parseHexWindow(hexStr)
	if err != nil {
		return err
	}
	ins, err := xinstr.Decode(code)
	if err != nil {
		return err
	}
	if ins.Size != wantSize {
		return fmt.Errorf("size = %d, want %d", ins.Size, wantSize)
	}
	return nil
}

func checkRelocateWidensJmp8() error {
	code, err := parseHexWindow("eb10")
	if err != nil {
		return err
	}
	ins, err := xinstr.Decode(code)
	if err != nil {
		return err
	}
	out := make([]byte, 5)
	n, err := xreloc.Relocate(out, &ins, 0x2000, 0x1000+uint32(ins.Size))
	if err != nil {
		return err
	}
	if n != 5 || out[0] != xinstr.OpcodeJmp32 {
		return fmt.Errorf("relocated = %x, want 5-byte JMP rel32", out[:n])
	}
	return nil
}

// parseHexWindow decodes a hex string and pads it to at least 16 bytes, the
// largest window Decode may need to read from.
func parseHexWindow(s string) ([]byte, error) {
	code, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("empty instruction bytes")
	}
	if len(code) < 16 {
		padded := make([]byte, 16)
		copy(padded, code)
		code = padded
	}
	return code, nil
}
