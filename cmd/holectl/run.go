package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/holekit/heap"
	"github.com/joshuapare/holekit/heap/hole"
	"github.com/joshuapare/holekit/heap/sidetable"
	"github.com/joshuapare/holekit/internal/buf"
	"github.com/joshuapare/holekit/internal/logger"
	"github.com/joshuapare/holekit/region"
	"github.com/joshuapare/holekit/trace"
)

const (
	backendInPlace   = "inplace"
	backendSideTable = "sidetable"
)

var (
	runBase    uint64
	runSize    int
	runMmap    string
	runBackend string
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Replay an allocation script and report the free chain",
		Long: `The run command builds a region, replays the alloc/free script against it
and prints every result followed by the final free chain and counters.

Script syntax (one command per line, # starts a comment):
  alloc <name> <size> [align]
  free <name>
  dump

A request that does not fit is reported and the script continues.

Example:
  holectl run script.txt
  holectl run --size 65536 --backend sidetable script.txt
  holectl run --mmap heap.bin --size 1048576 script.txt --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), args)
		},
	}

	cmd.Flags().Uint64Var(&runBase, "base", 0, "Base address of the region")
	cmd.Flags().IntVar(&runSize, "size", 4096, "Region size in bytes")
	cmd.Flags().StringVar(&runMmap, "mmap", "", "Back the region with this file (inplace backend only)")
	cmd.Flags().StringVar(&runBackend, "backend", backendInPlace, "Allocator: inplace or sidetable")
	return cmd
}

// session is one region and the heap replaying a script over it.
type session struct {
	heap   *heap.Heap
	mapped *region.Mapped
	zl     *zap.Logger
	live   map[string]liveBlock
}

type liveBlock struct {
	addr, size uintptr
}

// result is one script step, as reported in JSON output.
type result struct {
	Line  int    `json:"line"`
	Op    string `json:"op"`
	Name  string `json:"name,omitempty"`
	Addr  string `json:"addr,omitempty"`
	Size  uint64 `json:"size,omitempty"`
	Align uint64 `json:"align,omitempty"`
	NoFit bool   `json:"no_fit,omitempty"`
}

type runReport struct {
	Backend string          `json:"backend"`
	Results []result        `json:"results"`
	Final   json.RawMessage `json:"final"`
}

func newSession() (*session, error) {
	if runSize < int(hole.MinSize()) {
		return nil, errors.Newf("--size must be at least %d, got %d", hole.MinSize(), runSize)
	}
	if _, ok := buf.End(uintptr(runBase), uintptr(runSize)); !ok || uint64(uintptr(runBase)) != runBase {
		return nil, errors.Newf("--base %#x with --size %d wraps the address space", runBase, runSize)
	}

	s := &session{live: make(map[string]liveBlock)}
	hooks := []trace.Hook{trace.Slog(logger.L)}
	if traceOn {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		s.zl = zl
		hooks = append(hooks, trace.Zap(zl))
	}

	var a heap.Allocator
	switch runBackend {
	case backendInPlace:
		var mem region.Memory
		if runMmap != "" {
			if runBase != 0 {
				return nil, errors.New("--base cannot be combined with --mmap")
			}
			m, err := region.Map(runMmap, runSize)
			if err != nil {
				return nil, err
			}
			s.mapped = m
			mem = m
		} else {
			mem = region.Alloc(uintptr(runBase), runSize)
		}
		a = hole.New(mem)

	case backendSideTable:
		if runMmap != "" {
			return nil, errors.New("--mmap requires the inplace backend")
		}
		a = sidetable.New(uintptr(runBase), uintptr(runSize))

	default:
		return nil, errors.Newf("unknown backend %q (want %s or %s)", runBackend, backendInPlace, backendSideTable)
	}

	s.heap = heap.New(a,
		heap.WithLogger(logger.L),
		heap.WithDeallocHook(trace.Chain(hooks...)),
	)
	return s, nil
}

func (s *session) close(ctx context.Context) error {
	var err error
	if s.mapped != nil {
		err = errors.CombineErrors(s.mapped.Flush(ctx), s.mapped.Close())
	}
	if s.zl != nil {
		_ = s.zl.Sync()
	}
	return err
}

// step applies one op. Only a failed alloc is tolerated; every other error
// ends the run.
func (s *session) step(op scriptOp) (result, error) {
	res := result{Line: op.line, Op: op.kind.String(), Name: op.name}
	switch op.kind {
	case opAlloc:
		if _, dup := s.live[op.name]; dup {
			return res, errors.Newf("line %d: %q is already allocated", op.line, op.name)
		}
		res.Size, res.Align = uint64(op.size), uint64(op.align)
		addr, err := s.heap.Alloc(op.size, op.align)
		switch {
		case errors.Is(err, heap.ErrNoFit):
			res.NoFit = true
			return res, nil
		case err != nil:
			return res, errors.Wrapf(err, "line %d", op.line)
		}
		s.live[op.name] = liveBlock{addr: addr, size: op.size}
		res.Addr = fmt.Sprintf("%#x", addr)

	case opFree:
		b, ok := s.live[op.name]
		if !ok {
			return res, errors.Newf("line %d: %q is not allocated", op.line, op.name)
		}
		if err := s.heap.Free(b.addr, b.size); err != nil {
			return res, errors.Wrapf(err, "line %d", op.line)
		}
		delete(s.live, op.name)
		res.Addr = fmt.Sprintf("%#x", b.addr)
		res.Size = uint64(b.size)
	}
	return res, nil
}

func runRun(ctx context.Context, args []string) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ops, err := loadScript(args[0])
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}
	printVerbose("Loaded %d operations from %s\n", len(ops), args[0])

	s, err := newSession()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, s.close(ctx))
	}()
	logger.L.Info("run", "script", args[0], "backend", runBackend, "size", runSize, "ops", len(ops))

	report := runReport{Backend: runBackend}
	for _, op := range ops {
		res, stepErr := s.step(op)
		if stepErr != nil {
			return stepErr
		}
		report.Results = append(report.Results, res)
		if !jsonOut {
			printResult(res)
			if op.kind == opDump {
				printChain(s.heap)
			}
		}
	}

	if err := s.heap.Validate(); err != nil {
		return errors.Wrap(err, "allocator state is inconsistent")
	}

	if jsonOut {
		final, dumpErr := s.heap.DumpJSON()
		if dumpErr != nil {
			return dumpErr
		}
		report.Final = final
		return printJSON(report)
	}

	printChain(s.heap)
	st := s.heap.Stats()
	printInfo("\nStats:\n")
	printInfo("  Allocations: %d\n", st.Allocs)
	printInfo("  Frees: %d\n", st.Frees)
	printInfo("  No fit: %d\n", st.NoFits)
	printInfo("  In use: %d bytes\n", st.InUse)
	printInfo("  Free: %d bytes in %d holes\n", st.FreeBytes, st.Holes)
	return nil
}

func printResult(r result) {
	switch {
	case r.Op == "dump":
	case r.NoFit:
		printInfo("%4d  alloc %-8s %6d align %-5d no fit\n", r.Line, r.Name, r.Size, r.Align)
	case r.Op == "alloc":
		printInfo("%4d  alloc %-8s %6d align %-5d -> %s\n", r.Line, r.Name, r.Size, r.Align, r.Addr)
	case r.Op == "free":
		printInfo("%4d  free  %-8s %6d at %s\n", r.Line, r.Name, r.Size, r.Addr)
	}
}

func printChain(h *heap.Heap) {
	holes := h.Holes()
	printInfo("\nFree chain (%d holes):\n", len(holes))
	if len(holes) == 0 {
		printInfo("  (empty)\n")
	}
	for _, hl := range holes {
		printInfo("  [%#x, %#x)  %d bytes\n", hl.Addr, hl.End(), hl.Size)
	}
}
