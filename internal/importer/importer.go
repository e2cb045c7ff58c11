// Package importer loads discount campaigns from gzip-compressed files.
//
// Each line holds one code:
//
//	CODE,PERCENTAGE,USAGE_LIMIT,MINIMUM_ORDER_AMOUNT,START,END
//
// START and END are RFC 3339 timestamps. Blank lines and lines starting with
// '#' are ignored. A code may belong to one campaign file only: codes found
// in several files are reported and not imported.
package importer

import (
	"bufio"
	"context"
	"math/bits"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/klauspost/pgzip"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/domain/money"
)

const fieldCount = 6

// Options tunes the duplicate filter.
type Options struct {
	// Capacity is the expected number of codes per file.
	Capacity uint
	// FalsePositiveRate of each file's bloom filter.
	FalsePositiveRate float64
	// ProgressEvery logs progress after that many lines. Zero disables it.
	ProgressEvery uint64
}

func (o Options) withDefaults() Options {
	if o.Capacity == 0 {
		o.Capacity = 1_000_000
	}
	if o.FalsePositiveRate <= 0 {
		o.FalsePositiveRate = 0.001
	}
	return o
}

// LineError points at a malformed line.
type LineError struct {
	File string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return e.File + ":" + strconv.Itoa(e.Line) + ": " + e.Err.Error()
}

func (e *LineError) Unwrap() error { return e.Err }

// Result is the outcome of a scan.
type Result struct {
	// Codes are valid and unique across files, in file order.
	Codes []*discount.Code
	// Duplicates maps a code to the indexes of the files it appeared in.
	Duplicates map[string][]int
}

// fileScan holds what pass 2 found in one file.
type fileScan struct {
	codes []*discount.Code
	// shared marks codes that some other file's filter may contain.
	shared map[string]uint
}

// Scan reads every file twice. Pass 1 builds a bloom filter per file, pass
// 2 parses each line and checks it against the other files' filters. Both
// passes process files concurrently.
func Scan(ctx context.Context, files []string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if len(files) > bits.UintSize {
		return nil, errors.Errorf("at most %d files are supported", bits.UintSize)
	}
	lg := zctx.From(ctx)

	lg.Info("Pass 1: building bloom filters", zap.Int("files", len(files)))
	filters := make([]*bloom.BloomFilter, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			f, err := buildFilter(gctx, path, opts)
			if err != nil {
				return errors.Wrapf(err, "build filter for %s", path)
			}
			filters[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lg.Info("Pass 2: parsing codes")
	scans := make([]fileScan, len(files))
	g, gctx = errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			s, err := scanFile(gctx, i, path, filters, opts)
			if err != nil {
				return errors.Wrapf(err, "scan %s", path)
			}
			scans[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return merge(scans), nil
}

// merge drops codes confirmed in two or more files. A bloom hit alone is
// not proof: the other file must have flagged the same code too.
func merge(scans []fileScan) *Result {
	masks := make(map[string]uint)
	for _, s := range scans {
		for code, mask := range s.shared {
			masks[code] |= mask
		}
	}

	res := &Result{Duplicates: make(map[string][]int)}
	for code, mask := range masks {
		if bits.OnesCount(mask) < 2 {
			continue
		}
		var idx []int
		for i := range bits.UintSize {
			if mask&(1<<uint(i)) != 0 {
				idx = append(idx, i)
			}
		}
		res.Duplicates[code] = idx
	}
	for _, s := range scans {
		for _, c := range s.codes {
			if _, dup := res.Duplicates[c.Code]; !dup {
				res.Codes = append(res.Codes, c)
			}
		}
	}
	return res
}

func buildFilter(ctx context.Context, path string, opts Options) (*bloom.BloomFilter, error) {
	filter := bloom.NewWithEstimates(opts.Capacity, opts.FalsePositiveRate)
	err := streamLines(ctx, path, func(_ int, line string) error {
		if code, ok := codeOf(line); ok {
			filter.AddString(code)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return filter, nil
}

func scanFile(ctx context.Context, idx int, path string, filters []*bloom.BloomFilter, opts Options) (fileScan, error) {
	lg := zctx.From(ctx).With(zap.String("file", path))
	s := fileScan{shared: make(map[string]uint)}
	bit := uint(1) << uint(idx)
	seen := make(map[string]struct{})

	err := streamLines(ctx, path, func(n int, line string) error {
		if _, ok := codeOf(line); !ok {
			return nil
		}
		c, err := ParseLine(line)
		if err != nil {
			return &LineError{File: path, Line: n, Err: err}
		}
		if opts.ProgressEvery > 0 && uint64(n)%opts.ProgressEvery == 0 {
			lg.Info("Pass 2 progress", zap.Int("line", n))
		}
		if _, dup := seen[c.Code]; dup {
			lg.Warn("Code repeated within file, keeping first", zap.String("code", c.Code), zap.Int("line", n))
			return nil
		}
		seen[c.Code] = struct{}{}
		for j, f := range filters {
			if j != idx && f.TestString(c.Code) {
				s.shared[c.Code] |= bit
				break
			}
		}
		s.codes = append(s.codes, c)
		return nil
	})
	if err != nil {
		return fileScan{}, err
	}
	lg.Info("Pass 2 complete", zap.Int("codes", len(s.codes)), zap.Int("shared", len(s.shared)))
	return s, nil
}

// codeOf returns the normalized code of a data line.
func codeOf(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false
	}
	code, _, _ := strings.Cut(line, ",")
	code = discount.Normalize(code)
	return code, code != ""
}

// ParseLine parses one campaign line into an active code.
func ParseLine(line string) (*discount.Code, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != fieldCount {
		return nil, errors.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	pct, err := money.Parse(fields[1])
	if err != nil {
		return nil, errors.Wrap(err, "percentage")
	}
	percentage, err := money.NewPercentage(pct.Decimal())
	if err != nil {
		return nil, err
	}
	limit, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, errors.Wrap(err, "usage limit")
	}
	minimum, err := money.Parse(fields[3])
	if err != nil {
		return nil, errors.Wrap(err, "minimum order amount")
	}
	start, err := time.Parse(time.RFC3339, fields[4])
	if err != nil {
		return nil, errors.Wrap(err, "start")
	}
	end, err := time.Parse(time.RFC3339, fields[5])
	if err != nil {
		return nil, errors.Wrap(err, "end")
	}

	c := &discount.Code{
		Code:               discount.Normalize(fields[0]),
		Percentage:         percentage,
		StartDate:          start,
		EndDate:            end,
		UsageLimit:         limit,
		MinimumOrderAmount: minimum,
		IsActive:           true,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// streamLines opens a gzip-compressed file and calls fn for each line.
func streamLines(ctx context.Context, path string, fn func(n int, line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	n := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		if err := fn(n, scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}
	return nil
}
